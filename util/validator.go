package util

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
)

func Validate(dst interface{}) error {
	_, err := govalidator.ValidateStruct(dst)

	var messages []string

	if err != nil {
		errs := govalidator.ErrorsByField(err)
		for field, message := range errs {
			messages = append(messages, fmt.Sprintf("%s:%s", field, message))
		}

		sort.Strings(messages)
		return errors.New(strings.Join(messages, ", "))
	}

	return nil
}

func init() {
	govalidator.TagMap["supported_database"] = govalidator.Validator(func(db string) bool {
		databases := map[string]bool{
			"postgres": true,
		}

		_, ok := databases[db]
		return ok
	})
}
