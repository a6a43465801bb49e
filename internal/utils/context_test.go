// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestAccountIDCtxKey(t *testing.T) {
	if AccountIDCtxKey.String() != "accountID" {
		t.Errorf("expected 'accountID', got '%s'", AccountIDCtxKey.String())
	}
}

func TestGetAccountIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, int64(42))

	accountID, ok := GetAccountIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if accountID != 42 {
		t.Errorf("expected accountID=42, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	ctx := context.Background()

	accountID, ok := GetAccountIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if accountID != 0 {
		t.Errorf("expected accountID=0, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, "not-an-int64")

	accountID, ok := GetAccountIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
	if accountID != 0 {
		t.Errorf("expected accountID=0, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_ZeroValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, int64(0))

	accountID, ok := GetAccountIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true for zero value, got false")
	}
	if accountID != 0 {
		t.Errorf("expected accountID=0, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_NegativeValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, int64(-1))

	accountID, ok := GetAccountIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if accountID != -1 {
		t.Errorf("expected accountID=-1, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, int64(99))

	accountID, ok := GetAccountIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
	if accountID != 0 {
		t.Errorf("expected accountID=0, got %d", accountID)
	}
}
