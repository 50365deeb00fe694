package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func Test_EngineClient_Extract_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://engine.test/parse_cv"
	})).Return(jsonResponse(`{
		"skills": ["go", "sql"],
		"experience_years": 4,
		"seniority_level": "mid",
		"title": "Backend Developer",
		"education_level": "bachelor",
		"raw_text": "..."
	}`))

	client := NewClient("http://engine.test", time.Second)
	client.SetHTTPClient(mockClient)

	attributes, err := client.Extract(context.Background(), "cv.pdf", []byte("%PDF-"), "application/pdf")
	assert.NoError(err)
	assert.Equal([]string{"go", "sql"}, attributes.Skills)
	assert.Equal(4.0, attributes.ExperienceYears)
	assert.Equal("mid", attributes.SeniorityLevel)
}

func Test_EngineClient_Rank_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://engine.test/match_jobs"
	})).Return(jsonResponse(`{
		"matches": [
			{"job_id": "12", "skill_score": 90, "experience_score": 70, "education_score": 80,
			 "matched_skills": ["go"], "missing_skills": ["kubernetes"]},
			{"job_id": "7", "skill_score": 60, "experience_score": 50, "education_score": 40,
			 "matched_skills": [], "missing_skills": ["go"]}
		],
		"total_matches": 2
	}`))

	client := NewClient("http://engine.test", time.Second)
	client.SetHTTPClient(mockClient)

	items, err := client.Rank(context.Background(), Attributes{Skills: []string{"go"}}, "strict", 10)
	assert.NoError(err)
	assert.Len(items, 2)
	assert.Equal("12", items[0].JobID)
	assert.Equal(90.0, items[0].SkillScore)
	assert.Equal([]string{"kubernetes"}, items[0].MissingSkills)
}

func Test_EngineClient_Rank_MalformedPayloadFails(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(jsonResponse(`{"matches": "not-a-list"}`))

	client := NewClient("http://engine.test", time.Second)
	client.SetHTTPClient(mockClient)

	_, err := client.Rank(context.Background(), Attributes{}, "strict", 10)
	assert.Error(t, err)
}

func Test_EngineClient_NonOKStatusFails(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: 500,
		Body:       io.NopCloser(bytes.NewBufferString("boom")),
	}, nil)

	client := NewClient("http://engine.test", time.Second)
	client.SetHTTPClient(mockClient)

	err := client.AddJob(context.Background(), JobData{JobID: "1"})
	assert.Error(t, err)
}
