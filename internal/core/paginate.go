package core

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

const DefaultPageSize = 100

const tokenPrefix = "offset:"

func encodePageToken(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(tokenPrefix + strconv.Itoa(offset)))
}

func decodePageToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageToken, token)
	}
	s, ok := strings.CutPrefix(string(b), tokenPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageToken, token)
	}
	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageToken, token)
	}
	return offset, nil
}

// paginate cuts the page selected by p out of items.
func paginate[T any](items []T, p domain.PaginationParams) ([]T, domain.PaginationInfo, error) {
	if err := p.Validate(); err != nil {
		return nil, domain.PaginationInfo{}, err
	}
	size := int(p.PageSize)
	if size == 0 {
		size = DefaultPageSize
	}
	offset, err := decodePageToken(p.PageToken)
	if err != nil {
		return nil, domain.PaginationInfo{}, err
	}
	if offset > len(items) {
		offset = len(items)
	}
	end := min(offset+size, len(items))

	info := domain.PaginationInfo{
		TotalItems: int32(len(items)),
		PageSize:   int32(size),
	}
	if end < len(items) {
		info.NextPageToken = encodePageToken(end)
	}
	return items[offset:end], info, nil
}
