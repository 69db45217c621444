package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tokenObj struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func Test_TokenEngine_RoundTrip(t *testing.T) {
	engine := NewTokenEngine[tokenObj]("secret", time.Minute)

	token, err := engine.Generate("user1", tokenObj{ID: "user1", Name: "somebody"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "somebody", obj.Name)
}

func Test_TokenEngine_WrongSecret(t *testing.T) {
	engine := NewTokenEngine[tokenObj]("secret", time.Minute)
	other := NewTokenEngine[tokenObj]("another-secret", time.Minute)

	token, err := engine.Generate("user1", tokenObj{ID: "user1"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}
