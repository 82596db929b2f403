package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

type mockDrafter struct {
	result draft.Result
	prompt string
}

func (m *mockDrafter) Draft(ctx context.Context, prompt string) draft.Result {
	m.prompt = prompt
	return m.result
}

func (m *mockDrafter) ProviderID() string { return "mock" }

func TestServer_HandleDraft(t *testing.T) {
	drafter := &mockDrafter{result: draft.Succeeded("req-1", "#go", "\nGo is fun #go")}
	server := NewServer(drafter)

	result, err := server.handleDraft(context.Background(), DraftArgs{Prompt: "go gophers"})
	if err != nil {
		t.Fatalf("handleDraft failed: %v", err)
	}
	out, ok := result.(DraftResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result)
	}
	if out.Text != "Go is fun #go" || out.ID != "req-1" {
		t.Errorf("unexpected result: %+v", out)
	}
	if drafter.prompt != "#go #gophers" {
		t.Errorf("prompt = %q", drafter.prompt)
	}
}

func TestServer_HandleDraft_EmptyPrompt(t *testing.T) {
	server := NewServer(&mockDrafter{})
	if _, err := server.handleDraft(context.Background(), DraftArgs{Prompt: "  "}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestServer_HandleDraft_Failure(t *testing.T) {
	drafter := &mockDrafter{result: draft.Failed("req-2", "#go", ai.NewError(ai.KindMissingCredential, nil))}
	server := NewServer(drafter)

	_, err := server.handleDraft(context.Background(), DraftArgs{Prompt: "#go"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no API credential") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestFriendlyFailure_CoversKinds(t *testing.T) {
	kinds := []ai.Kind{
		ai.KindMissingCredential,
		ai.KindTransportFailure,
		ai.KindProviderRejected,
		ai.KindEmptyResponseBody,
		ai.KindMalformedResponseBody,
		ai.KindUnexpectedResponseShape,
	}
	for _, k := range kinds {
		if friendlyFailure(k) == "" {
			t.Errorf("no message for %s", k)
		}
	}
}
