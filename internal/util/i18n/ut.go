package i18n

import (
	ut "github.com/go-playground/universal-translator"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ja"
)

var UT = ut.New(en.New(), en.New(), ja.New())
