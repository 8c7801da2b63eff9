package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var ErrEmptyBody error = errors.New("request body is empty")

type Decoder struct{}

// DecodeJSONPayload decodes a single JSON object from the request body into
// object and validates it when it implements validation.Validatable.
func (d Decoder) DecodeJSONPayload(r *http.Request, object any) (err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	defer func() {
		errClose := r.Body.Close()
		if err == nil && errClose != nil {
			err = fmt.Errorf("closing request body: %w", errClose)
		}
	}()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err = decoder.Decode(object); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decoding json payload: %w", err)
	}

	if decoder.More() {
		return errors.New("decoding json payload: unexpected data after JSON object")
	}

	return validatePayload(object)
}
