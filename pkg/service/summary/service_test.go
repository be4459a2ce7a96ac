package summary_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/service/summary"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"{}"}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

const testTranscript = "Alice proposed moving the release to Friday. Bob agreed and will update the CI pipeline before then."

func respondingClient(raw string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{raw}}, nil
				},
			}, nil
		},
	}
}

func TestSummarize(t *testing.T) {
	raw := `{
		"summary": "The team agreed to move the release to Friday.",
		"key_points": ["Release date moved to Friday", "CI pipeline needs updating"],
		"action_items": ["Update the CI pipeline (owner: Bob)"],
		"decisions": ["Release moved to Friday"]
	}`
	svc, err := summary.New(respondingClient(raw))
	gt.NoError(t, err).Required()

	result, err := svc.Summarize(context.Background(), testTranscript, "Weekly sync, 2026-08-21")
	gt.NoError(t, err).Required()

	gt.V(t, result.Overview).Equal("The team agreed to move the release to Friday.")
	gt.A(t, result.KeyPoints).Length(2)
	gt.A(t, result.ActionItems).Length(1)
	gt.V(t, result.Decisions[0]).Equal("Release moved to Friday")
}

func TestSummarizeEmptyActionItems(t *testing.T) {
	raw := `{"summary": "Short status sync with no follow-ups.", "key_points": ["Status green"], "action_items": [], "decisions": []}`
	svc, err := summary.New(respondingClient(raw))
	gt.NoError(t, err).Required()

	result, err := svc.Summarize(context.Background(), testTranscript, "")
	gt.NoError(t, err).Required()
	gt.A(t, result.ActionItems).Length(0)
	gt.A(t, result.Decisions).Length(0)
}

func TestSummarizeRejectsEmptyTranscript(t *testing.T) {
	svc, err := summary.New(&mockLLMClient{})
	gt.NoError(t, err).Required()

	for _, transcript := range []string{"", "   \n\t  ", "too short"} {
		_, err := svc.Summarize(context.Background(), transcript, "")
		gt.Error(t, err)
		gt.B(t, errors.Is(err, model.ErrInvalidInput)).True()
	}
}

func TestSummarizeMalformedResponse(t *testing.T) {
	cases := map[string]string{
		"not JSON":    "the meeting went well",
		"missing key": `{"summary": "ok", "key_points": [], "decisions": []}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			svc, err := summary.New(respondingClient(raw))
			gt.NoError(t, err).Required()

			_, err = svc.Summarize(context.Background(), testTranscript, "")
			gt.Error(t, err)
			gt.B(t, errors.Is(err, model.ErrExternalService)).True()
		})
	}
}

func TestSummarizeSessionFailure(t *testing.T) {
	client := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return nil, goerr.New("model overloaded")
				},
			}, nil
		},
	}
	svc, err := summary.New(client)
	gt.NoError(t, err).Required()

	_, err = svc.Summarize(context.Background(), testTranscript, "")
	gt.Error(t, err)
	gt.B(t, errors.Is(err, model.ErrExternalService)).True()
}

func TestNewRequiresClient(t *testing.T) {
	_, err := summary.New(nil)
	gt.Error(t, err)
}
