package fmg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusErrorClassification(t *testing.T) {
	tests := []struct {
		code int
		kind Kind
	}{
		{-1, KindAPI},
		{-2, KindAuth},
		{-3, KindPermission},
		{-4, KindNotFound},
		{-5, KindValidation},
		{-6, KindDuplicate},
		{-7, KindInUse},
		{-8, KindLock},
		{-9, KindLock},
		{-10, KindAPI},
		{-11, KindTimeout},
		{-20, KindAuth},
		{-21, KindAuth},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			err := parseStatusError(tt.code, "", "GET /dvmdb/adom")
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.code, err.Code)
			assert.NotEmpty(t, err.Message)
		})
	}
}

func TestParseStatusErrorUnknownCode(t *testing.T) {
	err := parseStatusError(-999, "strange failure", "GET /x")
	assert.Equal(t, KindAPI, err.Kind)
	assert.Contains(t, err.Message, "-999")
	assert.Contains(t, err.Message, "strange failure")
}

func TestErrorFormatting(t *testing.T) {
	err := parseStatusError(-4, "", "GET /pm/config/adom/root/obj/firewall/address/web-1")
	assert.Equal(t, "fmg: GET /pm/config/adom/root/obj/firewall/address/web-1 failed: Requested resource not found", err.Error())

	bare := &Error{Kind: KindAuth, Message: "no authentication provided"}
	assert.Equal(t, "fmg: no authentication provided", bare.Error())
}

func TestConnectionErrorUnwraps(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := connectionError("GET /sys/status", cause)

	assert.Equal(t, KindConnection, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsConnectionError(err))
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsNotFound(parseStatusError(-4, "", "GET /x")))
	assert.True(t, IsDuplicate(parseStatusError(-6, "", "ADD /x")))
	assert.True(t, IsObjectInUse(parseStatusError(-7, "", "DELETE /x")))
	assert.True(t, IsPermission(parseStatusError(-3, "", "SET /x")))

	for _, code := range []int{-2, -20, -21} {
		assert.True(t, IsAuthError(parseStatusError(code, "", "EXEC /sys/login/user")), "code %d", code)
	}

	assert.False(t, IsNotFound(parseStatusError(-6, "", "ADD /x")))
	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsAuthError(nil))
}

func TestClassifiersMatchMessageFallback(t *testing.T) {
	dup := &Error{Kind: KindAPI, Message: "datasrc duplicate"}
	assert.True(t, IsDuplicate(dup))

	inUse := &Error{Kind: KindAPI, Message: "object is referenced by policy 12"}
	assert.True(t, IsObjectInUse(inUse))
}

func TestClassifiersSeeWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("creating address: %w", parseStatusError(-6, "", "ADD /x"))
	assert.True(t, IsDuplicate(wrapped))
	assert.False(t, IsNotFound(wrapped))
}
