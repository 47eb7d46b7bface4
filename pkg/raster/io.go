package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"

	// 注册解码器：png jpeg gif 来自标准库，bmp tiff webp 来自 x/image
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/logutil"
)

// Load 打开图片并提取 RGB 像素
func Load(path string) (*Raster, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errorutil.ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: 无法打开图片 %s: %v", errorutil.ErrIO, path, err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: 无法解码图片 %s: %v", errorutil.ErrIO, path, err)
	}
	logutil.Debug("load %s format=%s bounds=%v", path, format, img.Bounds())

	return FromImage(img), nil
}

// SavePNG 保存单张静态图
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: 无法创建文件 %s: %v", errorutil.ErrIO, path, err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: 写入 %s 失败: %v", errorutil.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: 关闭 %s 失败: %v", errorutil.ErrIO, path, err)
	}
	return nil
}
