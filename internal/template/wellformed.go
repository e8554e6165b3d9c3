package template

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// checkWellFormed decodes body token by token and returns the first syntax error.
func checkWellFormed(body []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = true
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
