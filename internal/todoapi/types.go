package todoapi

import "github.com/nhle/dayboard/internal/model"

// todoResponse is the envelope of POST and PUT /todo/.
type todoResponse struct {
	Success *bool           `json:"success"`
	Todo    *model.TodoItem `json:"todo"`
	Message string          `json:"message"`
}

// deleteResponse is the envelope of DELETE /todo/.
type deleteResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// listResponse is the envelope of GET /todo/.
type listResponse struct {
	Success *bool            `json:"success"`
	Todos   []model.TodoItem `json:"todos"`
	Lists   []model.TodoList `json:"lists"`
	Message string           `json:"message"`
}

// updateRequest is the PUT body: the id next to the changed fields.
type updateRequest struct {
	ID string `json:"id"`
	model.TodoPatch
}

// deleteRequest is the DELETE body.
type deleteRequest struct {
	ID string `json:"id"`
}
