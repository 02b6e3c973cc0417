package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomer_ProfileOmitsHash(t *testing.T) {
	c := &Customer{
		ID:           "c-1",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$secret",
		FirstName:    "A",
		LastName:     "B",
		UserType:     "student",
	}

	p := c.Profile()
	assert.Equal(t, Profile{ID: "c-1", Email: "alice@x.com", FirstName: "A", LastName: "B", UserType: "student"}, p)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.Contains(t, string(b), `"_id":"c-1"`)
}
