package protocol

import (
	stderrors "errors"

	"github.com/vango-dev/vtree/internal/errors"
)

// ErrorMessage is sent when a pass fails or a frame cannot be handled.
type ErrorMessage struct {
	Code    string // Error code, e.g. "E200"
	Message string // Human-readable error message
	Fatal   bool   // If true, the connection is closed afterwards
}

// NewErrorMessage builds an ErrorMessage from err. Structured errors keep
// their code; anything else is reported as E500.
func NewErrorMessage(err error, fatal bool) *ErrorMessage {
	var ve *errors.Error
	if stderrors.As(err, &ve) {
		return &ErrorMessage{Code: ve.Code, Message: err.Error(), Fatal: fatal}
	}
	return &ErrorMessage{Code: "E500", Message: err.Error(), Fatal: fatal}
}

// EncodeErrorMessage encodes an ErrorMessage to bytes.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)

	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	message, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}

	return &ErrorMessage{Code: code, Message: message, Fatal: fatal}, nil
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return "fatal: " + em.Message
	}
	return em.Message
}
