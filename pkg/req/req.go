package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxBodySize - ограничение тела запроса, картинки баннера передаются ссылкой или data URL
const maxBodySize = 8 << 20

func Decode[T any](body io.Reader) (T, error) {
	var payload T
	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty request body")
		}
		return payload, fmt.Errorf("decode request: %w", err)
	}
	return payload, nil
}
