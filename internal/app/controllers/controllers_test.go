package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterWithGin(); err != nil {
		panic(err)
	}
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code  dto.ErrorCode `json:"code"`
		Field string        `json:"field"`
	} `json:"error"`
}

func perform(t *testing.T, method, path string, handler gin.HandlerFunc, body string) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	r := gin.New()
	r.Handle(method, path, handler)

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out errorBody
	if w.Code >= 400 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

// Binding fails before any service is reached, so nil services are safe here.

func TestUpdateAcademics_RejectsPercentageAboveHundred(t *testing.T) {
	c := NewStudentController(nil, nil)

	w, body := perform(t, http.MethodPut, "/student/academics", c.UpdateAcademics,
		`{"tenthPercentage": 105, "activeBacklogs": 0, "totalBacklogs": 0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "tenthPercentage", body.Error.Field)
}

func TestUpdateAcademics_ActiveBacklogsCannotExceedTotal(t *testing.T) {
	c := NewStudentController(nil, nil)

	w, body := perform(t, http.MethodPut, "/student/academics", c.UpdateAcademics,
		`{"activeBacklogs": 3, "totalBacklogs": 1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "activeBacklogs", body.Error.Field)
}

func TestCreateJAF_RequiresEligibleBatches(t *testing.T) {
	c := NewCompanyController(nil, nil)

	w, body := perform(t, http.MethodPost, "/company/jaf", c.CreateJAF, `{
		"formType": "JNF",
		"title": "Graduate Engineer Trainee",
		"description": "Role",
		"ctc": 1200000,
		"eligibleBranches": ["CSE"],
		"eligibleDegrees": ["BTECH"],
		"selectionProcess": ["Online test"],
		"applicationDeadline": "2099-01-01T00:00:00Z"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "eligibleBatches", body.Error.Field)
}

func TestCreateJAF_MalformedJSON(t *testing.T) {
	c := NewCompanyController(nil, nil)

	w, body := perform(t, http.MethodPost, "/company/jaf", c.CreateJAF, `{"formType":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
}

func TestBulkStudents_RequiresKnownAction(t *testing.T) {
	c := NewAdminController(nil, nil, nil, nil, nil)

	w, body := perform(t, http.MethodPost, "/admin/students/bulk-verification", c.BulkStudents,
		`{"ids": [1, 2], "action": "DELETE"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
}

func TestGetStudent_InvalidID(t *testing.T) {
	c := NewAdminController(nil, nil, nil, nil, nil)
	r := gin.New()
	r.GET("/admin/students/:id", c.GetStudent)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(dto.ErrorCodeBadRequest))
}

func TestUpload_MissingFile(t *testing.T) {
	c := NewUploadController(nil)

	w, body := perform(t, http.MethodPost, "/upload", c.Upload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
}

func TestAttachmentHeader(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	attachment(ctx, "students-20261018.xlsx")

	assert.Equal(t, `attachment; filename="students-20261018.xlsx"`, w.Header().Get("Content-Disposition"))
}
