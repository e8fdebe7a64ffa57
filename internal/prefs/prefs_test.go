package prefs_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/RouterHaus/routerhaus/internal/prefs"
	"github.com/RouterHaus/routerhaus/internal/testutil"
	"github.com/RouterHaus/routerhaus/pkg/models"
)

func newService(t *testing.T) (*prefs.Service, prefs.Repository) {
	t.Helper()
	st := testutil.NewStore(t)
	repo, err := prefs.NewSQLiteRepository(context.Background(), st)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	return prefs.NewService(repo, testutil.Logger()), repo
}

func TestRepository_SetGetDelete(t *testing.T) {
	_, repo := newService(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); err != prefs.ErrNotFound {
		t.Fatalf("Get missing: err = %v, want ErrNotFound", err)
	}

	if err := repo.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	entry, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Value != "v2" {
		t.Errorf("Value = %q, want v2", entry.Value)
	}

	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "k"); err != prefs.ErrNotFound {
		t.Errorf("Delete again: err = %v, want ErrNotFound", err)
	}
}

func TestService_QuizRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if got := svc.Quiz(ctx); got != nil {
		t.Fatalf("Quiz before store = %+v, want nil", got)
	}

	answers := models.QuizAnswers{
		Coverage: models.CoverageLarge,
		Devices:  models.DeviceLoadMedium,
		Use:      "Gaming",
		Access:   "Fiber",
		Mesh:     models.MeshYes,
		Price:    models.PriceBucketHigh,
	}
	if err := svc.SetQuiz(ctx, answers); err != nil {
		t.Fatalf("SetQuiz: %v", err)
	}

	got := svc.Quiz(ctx)
	if got == nil {
		t.Fatal("Quiz after store = nil")
	}
	if *got != answers {
		t.Errorf("Quiz = %+v, want %+v", *got, answers)
	}

	if err := svc.ClearQuiz(ctx); err != nil {
		t.Fatalf("ClearQuiz: %v", err)
	}
	if got := svc.Quiz(ctx); got != nil {
		t.Errorf("Quiz after clear = %+v, want nil", got)
	}
	// Clearing an already-clear quiz is not an error.
	if err := svc.ClearQuiz(ctx); err != nil {
		t.Errorf("ClearQuiz again: %v", err)
	}
}

func TestService_CorruptValueFallsBackToDefault(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "quiz.answers", "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := svc.Quiz(ctx); got != nil {
		t.Errorf("Quiz with corrupt value = %+v, want nil", got)
	}

	if err := repo.Set(ctx, "optOut", "maybe"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if svc.OptOut(ctx) {
		t.Error("OptOut with corrupt value = true, want false")
	}
}

func TestService_Switches(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if svc.LowData(ctx) || svc.OptOut(ctx) {
		t.Fatal("switches should default to false")
	}
	if err := svc.SetLowData(ctx, true); err != nil {
		t.Fatalf("SetLowData: %v", err)
	}
	if err := svc.SetOptOut(ctx, true); err != nil {
		t.Fatalf("SetOptOut: %v", err)
	}
	if !svc.LowData(ctx) || !svc.OptOut(ctx) {
		t.Error("switches should read back true")
	}
}

func TestService_FacetPanels(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if got := svc.FacetPanels(ctx); len(got) != 0 {
		t.Fatalf("FacetPanels default = %v, want empty", got)
	}

	panels := map[string]bool{"brand": true, "price": false}
	if err := svc.SetFacetPanels(ctx, panels); err != nil {
		t.Fatalf("SetFacetPanels: %v", err)
	}
	got := svc.FacetPanels(ctx)
	if !got["brand"] || got["price"] {
		t.Errorf("FacetPanels = %v, want %v", got, panels)
	}
}

func TestService_ChatHistoryCap(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < prefs.MaxChatHistory+10; i++ {
		err := svc.AppendChat(ctx, prefs.ChatMessage{Role: "user", Text: fmt.Sprintf("msg %d", i)})
		if err != nil {
			t.Fatalf("AppendChat %d: %v", i, err)
		}
	}

	history := svc.ChatHistory(ctx)
	if len(history) != prefs.MaxChatHistory {
		t.Fatalf("history len = %d, want %d", len(history), prefs.MaxChatHistory)
	}
	// Oldest lines dropped, newest kept.
	if history[len(history)-1].Text != fmt.Sprintf("msg %d", prefs.MaxChatHistory+9) {
		t.Errorf("last message = %q", history[len(history)-1].Text)
	}

	if err := svc.ClearChat(ctx); err != nil {
		t.Fatalf("ClearChat: %v", err)
	}
	if got := svc.ChatHistory(ctx); len(got) != 0 {
		t.Errorf("history after clear = %d entries, want 0", len(got))
	}
}

func TestService_TrayPerSession(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	tray := svc.Tray(ctx, "s1")
	if len(tray.IDs) != 0 {
		t.Fatalf("fresh tray = %v, want empty", tray.IDs)
	}

	if _, err := tray.Toggle("k_1_a"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := svc.SetTray(ctx, "s1", tray); err != nil {
		t.Fatalf("SetTray: %v", err)
	}

	if got := svc.Tray(ctx, "s1"); len(got.IDs) != 1 || got.IDs[0] != "k_1_a" {
		t.Errorf("Tray s1 = %v, want [k_1_a]", got.IDs)
	}
	if got := svc.Tray(ctx, "s2"); len(got.IDs) != 0 {
		t.Errorf("Tray s2 = %v, want empty", got.IDs)
	}

	if err := svc.ClearTray(ctx, "s1"); err != nil {
		t.Fatalf("ClearTray: %v", err)
	}
	if got := svc.Tray(ctx, "s1"); len(got.IDs) != 0 {
		t.Errorf("Tray after clear = %v, want empty", got.IDs)
	}
}
