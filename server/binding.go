package server

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"

	"github.com/kbukum/llmcouncil/validation"
)

var bindOnce sync.Once

// UseValidator makes gin's ShouldBind* helpers validate with the shared
// validation engine, so `validate` tags apply to request bodies.
func UseValidator() {
	bindOnce.Do(func() { binding.Validator = structValidator{} })
}

type structValidator struct{}

func (structValidator) ValidateStruct(obj any) error {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return validation.Validate(obj)
}

func (structValidator) Engine() any { return validation.Engine() }
