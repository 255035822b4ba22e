// Package imageutil bounds the size of generated illustrations before they
// enter the persisted notebook blob.
package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// ShrinkDataURI decodes a data: URI holding a PNG or JPEG image and scales
// it down so its longer edge is at most maxEdge, preserving aspect ratio.
// Images already within bounds, unsupported formats, and decode failures all
// return the input unchanged; shrinking is best effort and never loses the
// illustration.
func ShrinkDataURI(dataURI string, maxEdge int) string {
	if maxEdge <= 0 {
		return dataURI
	}
	mime, raw, err := splitDataURI(dataURI)
	if err != nil {
		return dataURI
	}

	var src image.Image
	switch mime {
	case "image/png":
		src, err = png.Decode(bytes.NewReader(raw))
	case "image/jpeg":
		src, err = jpeg.Decode(bytes.NewReader(raw))
	default:
		return dataURI
	}
	if err != nil {
		return dataURI
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return dataURI
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch mime {
	case "image/png":
		err = png.Encode(&buf, dst)
	case "image/jpeg":
		err = jpeg.Encode(&buf, dst, nil)
	}
	if err != nil {
		return dataURI
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func splitDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode payload: %w", err)
	}
	return mime, data, nil
}
