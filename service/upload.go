package service

import (
	"Petly/pkg/snowflake"
	"Petly/types"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/webp"
)

const maxImageSize int64 = 10 << 20

var _ IUploadService = (*UploadService)(nil)

type IUploadService interface {
	// UploadImage validates an image and stores it under folder, returning its public url.
	UploadImage(ctx context.Context, userID uint64, folder string, header *multipart.FileHeader) (*types.UploadResp, error)
}

type UploadService struct {
	Bucket ObjectStore
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func (s *UploadService) UploadImage(ctx context.Context, userID uint64, folder string, header *multipart.FileHeader) (*types.UploadResp, error) {
	if header == nil {
		return nil, invalid("Falta la imagen")
	}
	// header.Size is client supplied; the reader below is limited as well
	if header.Size <= 0 || header.Size > maxImageSize {
		return nil, invalid("La imagen debe pesar como máximo 10 MB")
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.upload(ctx, userID, folder, f)
}

func (s *UploadService) upload(ctx context.Context, userID uint64, folder string, f io.ReadSeeker) (*types.UploadResp, error) {
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	contentType := http.DetectContentType(head[:n])
	if !allowedMime[contentType] {
		return nil, invalid("Formato de imagen no soportado (usa JPEG, PNG o WebP)")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, invalid("La imagen no es válida")
	}
	format = strings.ToLower(format)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/%d/%s/%d%s", folder, userID, time.Now().UTC().Format("2006/01/02"), snowflake.GenID(), ext)

	url, err := s.Bucket.Put(ctx, key, io.LimitReader(f, maxImageSize+1), contentType)
	if err != nil {
		return nil, err
	}
	return &types.UploadResp{FileURL: url, Width: cfg.Width, Height: cfg.Height}, nil
}
