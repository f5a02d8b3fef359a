// Package validation holds the field rules shared by the submission wizard
// and the server-side re-check on complaint intake. Every rule is a pure
// predicate over a field name and candidate value; it returns "" when the
// value is acceptable and a user-facing message otherwise.
package validation

import (
	"regexp"
	"sort"
	"strings"
)

// MaxAttachmentSize is the upload ceiling in bytes (5 MiB).
const MaxAttachmentSize = 5 * 1024 * 1024

// AllowedMIMETypes lists the accepted attachment content types.
var AllowedMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

const (
	MsgRequired   = "Это поле обязательно"
	MsgConsent    = "Необходимо согласиться"
	MsgPhone      = "Введите корректный номер телефона (например, +79991234567)"
	MsgCarPlate   = "Введите корректный госномер (например, А123ВС77)"
	MsgINN        = "ИНН должен содержать 10 или 12 цифр"
	MsgEmail      = "Некорректный email"
	MsgAttachment = "Файл слишком большой или недопустимый формат (макс. 5 МБ, JPEG, PNG, PDF)"
)

var (
	phonePattern = regexp.MustCompile(`^(\+7|8)\d{10}$`)
	platePattern = regexp.MustCompile(`^[АВЕКМНОРСТУХ]\d{3}[АВЕКМНОРСТУХ]{2}\d{2,3}$`)
	innPattern   = regexp.MustCompile(`^\d{10}$|^\d{12}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// patterns maps field names to their format rule. Fields without an entry
// fall back to the required-text rule.
var patterns = map[string]struct {
	re  *regexp.Regexp
	msg string
}{
	"phone":    {phonePattern, MsgPhone},
	"carPlate": {platePattern, MsgCarPlate},
	"inn":      {innPattern, MsgINN},
	"email":    {emailPattern, MsgEmail},
}

// Field validates a single text field by name. A field with a format rule
// must match its pattern; any other field must be non-blank.
func Field(name, value string) string {
	if p, ok := patterns[name]; ok {
		if !p.re.MatchString(value) {
			return p.msg
		}
		return ""
	}
	return Required(value)
}

// Required rejects values that are empty after trimming.
func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgRequired
	}
	return ""
}

// Consent rejects unchecked consent flags.
func Consent(checked bool) string {
	if !checked {
		return MsgConsent
	}
	return ""
}

// Attachment validates an upload candidate: present, within the size
// ceiling and of an accepted content type.
func Attachment(filename string, size int64, contentType string) string {
	if filename == "" || size <= 0 {
		return MsgRequired
	}
	if size > MaxAttachmentSize || !AllowedMIMETypes[contentType] {
		return MsgAttachment
	}
	return ""
}

// Errors is a field name → message map produced by a full-form check.
// It satisfies error so services can hand it up to the HTTP layer, where
// it becomes a 400 listing every failing field.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for name := range e {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, name := range fields {
		parts = append(parts, name+": "+e[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
