package apiclient_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/apimodel"
	rperrors "github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
)

type uploadedForm struct {
	contentType string
	auth        string
	files       map[string]string
	names       map[string]string
	fields      map[string]string
}

// captureUpload parses each multipart request into forms and answers with
// reply. A request carrying "Bearer expired" gets a 401.
func captureUpload(t *testing.T, forms *[]uploadedForm, reply any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer expired" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "expired"})
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": err.Error()})
			return
		}

		form := uploadedForm{
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			files:       map[string]string{},
			names:       map[string]string{},
			fields:      map[string]string{},
		}
		for key, headers := range r.MultipartForm.File {
			fh := headers[0]
			f, err := fh.Open()
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"detail": err.Error()})
				return
			}
			data, _ := io.ReadAll(f)
			_ = f.Close()
			form.files[key] = string(data)
			form.names[key] = fh.Filename
		}
		for key, values := range r.MultipartForm.Value {
			form.fields[key] = values[0]
		}
		*forms = append(*forms, form)

		writeJSON(w, http.StatusCreated, reply)
	}
}

func TestUploadFile(t *testing.T) {
	f := setupTestFixture(t, signedIn)
	var forms []uploadedForm
	f.api.handle("/research/publications/7/upload/", captureUpload(t, &forms, map[string]any{"pdf_file": "/media/paper.pdf"}))

	out, err := f.client.Files().UploadFile(context.Background(), "/research/publications/7/upload/",
		apiclient.File{Name: "paper.pdf", Content: strings.NewReader("%PDF-1.7")},
		map[string]string{"title": "Graphene", "is_public": "true"})
	require.NoError(t, err)
	require.JSONEq(t, `{"pdf_file":"/media/paper.pdf"}`, string(out))

	require.Len(t, forms, 1)
	form := forms[0]
	require.True(t, strings.HasPrefix(form.contentType, "multipart/form-data; boundary="))
	require.Equal(t, "Bearer T1", form.auth)
	require.Equal(t, map[string]string{apiclient.FileFieldName: "%PDF-1.7"}, form.files)
	require.Equal(t, "paper.pdf", form.names[apiclient.FileFieldName])
	require.Equal(t, map[string]string{"title": "Graphene", "is_public": "true"}, form.fields)
	require.Equal(t, http.MethodPost, f.api.lastCall(t).Method)
}

func TestUploadFile_WithoutSession(t *testing.T) {
	f := setupTestFixture(t, tokens.Session{})
	var forms []uploadedForm
	f.api.handle("/uploads/", captureUpload(t, &forms, map[string]any{}))

	_, err := f.client.Files().UploadFile(context.Background(), "/uploads/",
		apiclient.File{Name: "a.txt", Content: strings.NewReader("a")}, nil)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.Empty(t, forms[0].auth)
}

func TestUploadFile_RefreshReplaysForm(t *testing.T) {
	f := setupTestFixture(t, tokens.Session{AccessToken: "expired", RefreshToken: "R1"})
	var forms []uploadedForm
	f.api.handle("/uploads/", captureUpload(t, &forms, map[string]any{"ok": true}))
	f.api.handle(apiclient.RefreshEndpoint, respond(http.StatusOK, map[string]any{"access": "T2"}))

	_, err := f.client.Files().UploadFile(context.Background(), "/uploads/",
		apiclient.File{Name: "data.csv", Content: strings.NewReader("x,y\n1,2\n")},
		map[string]string{"note": "run 4"})
	require.NoError(t, err)

	require.Len(t, f.api.callsTo("/uploads/"), 2)
	require.Len(t, forms, 1)
	require.Equal(t, "Bearer T2", forms[0].auth)
	require.Equal(t, "x,y\n1,2\n", forms[0].files[apiclient.FileFieldName])
	require.Equal(t, "run 4", forms[0].fields["note"])
}

func TestUploadFile_ErrorContract(t *testing.T) {
	f := setupTestFixture(t, signedIn)
	f.api.handle("/uploads/", respond(http.StatusRequestEntityTooLarge, map[string]any{"detail": "File too large."}))

	_, err := f.client.Files().UploadFile(context.Background(), "/uploads/",
		apiclient.File{Name: "big.bin", Content: strings.NewReader("...")}, nil)
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusRequestEntityTooLarge, apiErr.Status)
	require.Equal(t, "File too large.", apiErr.Message)
}

func TestUploadFile_MissingContent(t *testing.T) {
	f := setupTestFixture(t, signedIn)

	_, err := f.client.Files().UploadFile(context.Background(), "/uploads/", apiclient.File{Name: "empty"}, nil)
	require.ErrorIs(t, err, rperrors.ErrInvalidRequest)
	require.False(t, apiclient.IsNetworkError(err))
	require.Empty(t, f.api.Calls())
}

func TestOrganization_UpdateSettingsImages(t *testing.T) {
	f := setupTestFixture(t, signedIn)
	var forms []uploadedForm
	f.api.handle("/organization/settings/", captureUpload(t, &forms, map[string]any{
		"name":          "Institute",
		"vision_image":  "http://x/media/vision.png",
		"mission_image": "http://x/media/mission.png",
	}))

	settings, err := f.client.Organization.UpdateSettingsImages(context.Background(), map[string]apiclient.File{
		apimodel.VisionImageField:  {Name: "vision.png", Content: strings.NewReader("v")},
		apimodel.MissionImageField: {Name: "mission.png", Content: strings.NewReader("m")},
	}, map[string]string{"vision": "Open science"})
	require.NoError(t, err)
	require.Equal(t, "http://x/media/vision.png", settings.VisionImage)
	require.Equal(t, "http://x/media/mission.png", settings.MissionImage)

	require.Equal(t, http.MethodPut, f.api.lastCall(t).Method)
	require.Len(t, forms, 1)
	require.Equal(t, map[string]string{"vision_image": "v", "mission_image": "m"}, forms[0].files)
	require.Equal(t, "Open science", forms[0].fields["vision"])
}
