package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/models"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
)

// registerResource wires the uniform CRUD surface for a simple entity:
// list, create, fetch, full replace, partial update and delete.
func registerResource[T any](s *Server, api *gin.RouterGroup, path, idParam string) {
	api.GET(path+"/", listHandler[T](s))
	api.POST(path+"/", createHandler[T](s))
	api.GET(path+"/:"+idParam+"/", getHandler[T](s, idParam))
	api.PUT(path+"/:"+idParam+"/", replaceHandler[T](s, idParam))
	api.PATCH(path+"/:"+idParam+"/", patchHandler[T](s, idParam))
	api.DELETE(path+"/:"+idParam+"/", deleteHandler[T](s, idParam))
}

func listHandler[T any](s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := sqlite.List[T](c.Request.Context(), s.store)
		if err != nil {
			s.storeError(c, err)
			return
		}
		if records == nil {
			records = []T{}
		}
		c.JSON(http.StatusOK, records)
	}
}

// createHandler inserts a bound record, stamping the authenticated caller
// on entities that track their creator.
func createHandler[T any](s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		if creatable, ok := any(&record).(models.Creatable); ok {
			creatable.SetCreatedBy(currentUser(c).ID)
		}
		if err := sqlite.Create(c.Request.Context(), s.store, &record); err != nil {
			s.storeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, record)
	}
}

func getHandler[T any](s *Server, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, idParam)
		if !ok {
			return
		}
		record, err := sqlite.Get[T](c.Request.Context(), s.store, id)
		if err != nil {
			s.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// replaceHandler overwrites all mutable fields with the request body.
func replaceHandler[T any](s *Server, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, idParam)
		if !ok {
			return
		}
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		updated, err := sqlite.Replace(c.Request.Context(), s.store, id, &record)
		if err != nil {
			s.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// patchHandler merges the request body over the stored record, so omitted
// fields keep their current values.
func patchHandler[T any](s *Server, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, idParam)
		if !ok {
			return
		}
		record, err := sqlite.Get[T](c.Request.Context(), s.store, id)
		if err != nil {
			s.storeError(c, err)
			return
		}
		if !mergeBody(c, s, &record) {
			return
		}
		if err := sqlite.Save(c.Request.Context(), s.store, &record); err != nil {
			s.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func deleteHandler[T any](s *Server, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, idParam)
		if !ok {
			return
		}
		if err := sqlite.Delete[T](c.Request.Context(), s.store, id); err != nil {
			s.storeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// mergeBody unmarshals the request body over record, dropping any client
// attempt to rewrite the primary key. Returns false after responding when
// the body is unreadable or malformed.
func mergeBody[T any](c *gin.Context, s *Server, record *T) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return false
	}
	delete(fields, "id")
	cleaned, err := json.Marshal(fields)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return false
	}
	if err := json.Unmarshal(cleaned, record); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}
