package chat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindcare/internal/api"
	"mindcare/internal/chat"
	"mindcare/internal/stubtest"
)

func register(t *testing.T, baseURL, email, role string) *api.Client {
	t.Helper()
	client := api.New(api.Options{BaseURL: baseURL})
	auth, err := client.Register(context.Background(), api.RegisterRequest{Email: email, Password: "123456", Role: role})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	client.SetBearer(auth.Token)
	return client
}

func TestConversationAgainstBackend(t *testing.T) {
	ctx := context.Background()
	server := stubtest.NewServer(t)
	conversation := chat.New(api.New(api.Options{BaseURL: server.URL}))

	history := conversation.History()
	if len(history) != 1 || history[0].Role != chat.RoleAssistant || history[0].Content != chat.Greeting {
		t.Fatalf("expected the greeting, got %+v", history)
	}

	if _, ok := conversation.Send(ctx, "   "); ok {
		t.Fatal("blank input must be ignored")
	}

	reply, ok := conversation.Send(ctx, "I have an exam tomorrow")
	if !ok {
		t.Fatal("expected a reply")
	}
	want := "Exams can feel overwhelming.\n• Break revision into short blocks\n• Sleep before the exam day\n• Talk to a counsellor if the pressure keeps building"
	if reply.Content != want {
		t.Fatalf("unexpected normalized reply:\n%s", reply.Content)
	}
	if got := conversation.History(); len(got) != 3 || got[1].Role != chat.RoleUser || got[2].ID != reply.ID {
		t.Fatalf("unexpected history %+v", got)
	}
}

func TestCrisisMessageRaisesCriticalAlert(t *testing.T) {
	ctx := context.Background()
	server := stubtest.NewServer(t)
	counsellor := chat.New(register(t, server.URL, "counsellor@campus.edu", "counsellor"))
	student := chat.New(register(t, server.URL, "student@example.com", "student"))

	if _, ok := student.Send(ctx, "Some days I think about Self Harm"); !ok {
		t.Fatal("expected a reply")
	}
	if _, ok := student.Send(ctx, "thanks for listening"); !ok {
		t.Fatal("expected a reply")
	}

	alerts, err := counsellor.Inbox(ctx)
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	if len(alerts) != 1 || alerts[0].Level != chat.LevelCritical || alerts[0].Message != "Some days I think about Self Harm" {
		t.Fatalf("expected one critical alert, got %+v", alerts)
	}

	if _, err := student.Inbox(ctx); err == nil {
		t.Fatal("students must not read the inbox")
	}
}

func TestFallbackReplies(t *testing.T) {
	ctx := context.Background()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/alerts" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"reply":""}`))
	}))
	defer empty.Close()

	reply, _ := chat.New(api.New(api.Options{BaseURL: empty.URL})).Send(ctx, "I want to end my life")
	if reply.Content != chat.EmptyReply {
		t.Fatalf("expected empty-reply fallback, got %q", reply.Content)
	}

	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	reply, _ = chat.New(api.New(api.Options{BaseURL: down.URL})).Send(ctx, "hello")
	if reply.Content != chat.FailedReply {
		t.Fatalf("expected failure fallback, got %q", reply.Content)
	}
}

func TestIsCrisis(t *testing.T) {
	for _, text := range []string{"thinking about SUICIDE", "i might hurt myself", "want to end my life"} {
		if !chat.IsCrisis(text) {
			t.Errorf("expected %q to be a crisis", text)
		}
	}
	if chat.IsCrisis("exam stress is killing my mood") {
		t.Error("ordinary stress must not raise an alert")
	}
}

func TestNormalize(t *testing.T) {
	got := chat.Normalize("  Intro  \n\n-first\n•   second\n - third\n")
	want := "Intro\n• first\n• second\n• third"
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}
