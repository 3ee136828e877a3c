//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/users"
)

const (
	testUserID    = "6b1f2a4e-3c5d-4e6f-8a9b-0c1d2e3f4a5b"
	testPackageID = "2f4c6e8a-1b3d-4f5a-9c7e-0d2b4f6a8c1e"
	testSessionID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

var (
	testUser  = users.Actor{UserID: testUserID, Role: users.RoleUser}
	testAdmin = users.Actor{UserID: "0e1d2c3b-4a59-4867-9f8e-7d6c5b4a3f2e", Role: users.RoleAdmin}
)

// newTestContext builds a gin context for body sent by actor
func newTestContext(method, url, body string, actor *users.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if actor != nil {
		c.Set(actorKey, *actor)
	}
	return c, w
}
