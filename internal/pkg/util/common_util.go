package util

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// StrSliceToUInt64Slice 字符串切片转uint64切片
func StrSliceToUInt64Slice(strs []string) ([]uint64, error) {
	res := make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", s, err)
		}
		res = append(res, v)
	}
	return res, nil
}

// GetSafeContentType 嗅探文件真实类型，不信客户端报的 Content-Type
func GetSafeContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
