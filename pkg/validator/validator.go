package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phoneNumberPattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs json field naming and the custom tags on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phonenumber", phoneNumberValidator); err != nil {
		log.Fatal("register phonenumber validator failed")
	}
}

// phone numbers are stored in E.164 form for SMS delivery
var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return phoneNumberPattern.MatchString(fl.Field().String())
}
