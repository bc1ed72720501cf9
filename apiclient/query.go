package apiclient

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/jrsteele09/research-platform-client/internal/utils"
)

// Params are query parameters for list endpoints. Nil values and nil pointers
// are left out of the query string, pointers are dereferenced and slices
// repeat the key once per element.
type Params map[string]any

// Encode renders the parameters in key order.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	values := url.Values{}
	for _, key := range utils.SortedKeys(p) {
		v, ok := indirect(p[key])
		if !ok {
			continue
		}
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			values.Add(key, string(v.Bytes()))
			continue
		}
		if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
			for i := range v.Len() {
				if elem, ok := indirect(v.Index(i).Interface()); ok {
					values.Add(key, fmt.Sprint(elem.Interface()))
				}
			}
			continue
		}
		values.Add(key, fmt.Sprint(v.Interface()))
	}
	return values.Encode()
}

func indirect(value any) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, true
}

func withQuery(path string, params Params) string {
	if query := params.Encode(); query != "" {
		return path + "?" + query
	}
	return path
}
