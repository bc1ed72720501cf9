package apiclient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/internal/utils"
)

func TestParams_Encode(t *testing.T) {
	var noStatus *string

	tests := []struct {
		name   string
		params apiclient.Params
		want   string
	}{
		{name: "nil", params: nil, want: ""},
		{name: "empty", params: apiclient.Params{}, want: ""},
		{
			name:   "sorted keys",
			params: apiclient.Params{"search": "graphene", "page": 2, "ordering": "-created_at"},
			want:   "ordering=-created_at&page=2&search=graphene",
		},
		{
			name:   "nil values are omitted",
			params: apiclient.Params{"page": 1, "status": nil, "department": noStatus},
			want:   "page=1",
		},
		{
			name:   "pointers are dereferenced",
			params: apiclient.Params{"is_public": utils.Ptr(true), "page_size": utils.Ptr(50)},
			want:   "is_public=true&page_size=50",
		},
		{
			name:   "slices repeat the key",
			params: apiclient.Params{"status": []string{"draft", "published"}},
			want:   "status=draft&status=published",
		},
		{
			name:   "values are escaped",
			params: apiclient.Params{"search": "a&b c"},
			want:   "search=a%26b+c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.params.Encode())
		})
	}
}
