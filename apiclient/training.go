package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

type TrainingEndpoints struct {
	client *Client
}

func (t *TrainingEndpoints) Courses(ctx context.Context, params Params) (*apimodel.Page[apimodel.Course], error) {
	return get[apimodel.Page[apimodel.Course]](ctx, t.client, "/training/courses/", params)
}

func (t *TrainingEndpoints) SummerTraining(ctx context.Context, params Params) (*apimodel.Page[apimodel.Object], error) {
	return get[apimodel.Page[apimodel.Object]](ctx, t.client, "/training/summer-training/", params)
}

func (t *TrainingEndpoints) PublicServices(ctx context.Context, params Params) (*apimodel.Page[apimodel.Object], error) {
	return get[apimodel.Page[apimodel.Object]](ctx, t.client, "/training/public-services/", params)
}

// EnrollInCourse posts {"course": courseID} merged with data. A "course" key
// in data wins.
func (t *TrainingEndpoints) EnrollInCourse(ctx context.Context, courseID int, data apimodel.Object) (apimodel.Object, error) {
	return t.post(ctx, "/training/enrollments/", withID("course", courseID, data))
}

// ApplyForSummerTraining posts {"program": programID} merged with data.
func (t *TrainingEndpoints) ApplyForSummerTraining(ctx context.Context, programID int, data apimodel.Object) (apimodel.Object, error) {
	return t.post(ctx, "/training/applications/", withID("program", programID, data))
}

func (t *TrainingEndpoints) post(ctx context.Context, path string, body apimodel.Object) (apimodel.Object, error) {
	out, err := send[apimodel.Object](ctx, t.client, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func withID(key string, id int, data apimodel.Object) apimodel.Object {
	body := apimodel.Object{key: id}
	for k, v := range data {
		body[k] = v
	}
	return body
}
