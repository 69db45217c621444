package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/nfnt/resize"
)

// ReadFormImage pulls the uploaded image out of the multipart request.
func ReadFormImage(ctx context.Context, key string) (data []byte, mime, fileName string, err error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "Cannot read the file")
	}

	return data, header.Header.Get("Content-Type"), header.Filename, nil
}

// CompressImage bounds the image to maxWidth x maxHeight keeping the aspect
// ratio, re-encoded in its original format.
func CompressImage(data []byte, mime string, maxWidth, maxHeight uint) ([]byte, error) {
	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return encodeImg(mime, resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos2))
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("we just accept jpeg, gif or png")
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("we just accept jpeg, gif or png")
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}
