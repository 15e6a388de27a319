package logging

import (
	"log/slog"

	"github.com/m-mizutani/masq"
)

// newRedactAttr returns a masq ReplaceAttr hook that hides AWS credentials
// and other secrets if a config or request value is ever logged whole.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("access_key_id"),
		masq.WithFieldName("secret_access_key"),
		masq.WithFieldName("AccessKeyID"),
		masq.WithFieldName("SecretAccessKey"),
		masq.WithFieldName("password"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),
		masq.WithFieldPrefix("secret_"),
	)
}
