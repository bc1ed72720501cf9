package apitest

const (
	green   = "\033[32m"
	blue    = "\033[34m"
	cyan    = "\033[36m"
	yellow  = "\033[33m"
	magenta = "\033[35m"

	resetColour = "\033[0m"
)

var methodColours = map[string]string{
	"GET":    green,
	"POST":   blue,
	"PUT":    cyan,
	"DELETE": yellow,
	"PATCH":  magenta,
}

// colouredMethod pads and colours an HTTP method for console logs.
func colouredMethod(method string) string {
	colour, ok := methodColours[method]
	if !ok {
		return method
	}
	return colour + method + resetColour
}
