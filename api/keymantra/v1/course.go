package keymantrav1

import "time"

type Course struct {
	Id            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	QuestionCount int64     `json:"questionCount"`
	CreateTime    time.Time `json:"createTime"`
	UpdateTime    time.Time `json:"updateTime"`
}

type Question struct {
	Id         int64     `json:"id"`
	CourseId   int64     `json:"courseId"`
	SortOrder  int32     `json:"sortOrder"`
	Title      string    `json:"title"`
	Answer     *string   `json:"answer,omitempty"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

type CreateCourseRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateCourseRequest struct {
	Id          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type GetCourseResponse struct {
	Course    *Course     `json:"course"`
	Questions []*Question `json:"questions"`
}

type ListCoursesRequest struct {
	Pagination *PaginationRequest `json:"pagination,omitempty"`
	// Filter is a CEL expression, e.g. `name.startsWith('Unit') && keyword == 'travel'`.
	Filter  string `json:"filter,omitempty"`
	OrderBy string `json:"orderBy,omitempty"`
}

func (r *ListCoursesRequest) GetPagination() *PaginationRequest {
	if r == nil {
		return nil
	}
	return r.Pagination
}

func (r *ListCoursesRequest) GetFilter() string {
	if r == nil {
		return ""
	}
	return r.Filter
}

func (r *ListCoursesRequest) GetOrderBy() string {
	if r == nil {
		return ""
	}
	return r.OrderBy
}

type ListCoursesResponse struct {
	Courses    []*Course           `json:"courses"`
	Pagination *PaginationResponse `json:"pagination"`
}

type ListCourseQuestionsRequest struct {
	CourseId int64 `json:"courseId"`
}

type ListCourseQuestionsResponse struct {
	Questions []*Question `json:"questions"`
}

type AddQuestionRequest struct {
	CourseId int64   `json:"courseId"`
	Title    string  `json:"title"`
	Answer   *string `json:"answer,omitempty"`
	// SortOrder zero appends the question.
	SortOrder int32 `json:"sortOrder,omitempty"`
}

type UpdateQuestionRequest struct {
	CourseId   int64   `json:"courseId"`
	QuestionId int64   `json:"questionId"`
	Title      string  `json:"title"`
	Answer     *string `json:"answer,omitempty"`
	SortOrder  int32   `json:"sortOrder,omitempty"`
}

type RemoveQuestionRequest struct {
	CourseId   int64 `json:"courseId"`
	QuestionId int64 `json:"questionId"`
}

type ReorderQuestionsRequest struct {
	CourseId    int64   `json:"courseId"`
	QuestionIds []int64 `json:"questionIds"`
}
