package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"wealthease-ai/internal/models"
	"wealthease-ai/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func seedSettings(t *testing.T, svc *SettingsService, ns uuid.UUID, values map[models.SettingKey]string) {
	t.Helper()
	for k, v := range values {
		if err := svc.PutKey(context.Background(), ns, k, v); err != nil {
			t.Fatalf("PutKey(%s) error = %v", k, err)
		}
	}
}

func TestGetViewDefaults(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository(), zap.NewNop())

	view, err := svc.GetView(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetView() error = %v", err)
	}
	if view.UserAvatar != models.DefaultAvatar {
		t.Errorf("UserAvatar = %q, want %q", view.UserAvatar, models.DefaultAvatar)
	}
	if !view.EmailNotifications || view.TwoFactorEnabled || view.IsLoggedIn {
		t.Errorf("view = %+v, want email on, 2FA off, logged out", view)
	}
}

func TestPutKeyValidation(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository(), zap.NewNop())
	ns := uuid.New()

	tests := []struct {
		key     models.SettingKey
		value   string
		wantErr bool
	}{
		{models.KeyUserData, `{"name":"Ayu"}`, false},
		{models.KeyUserData, `not json`, true},
		{models.KeyUserAvatar, "🐱", false},
		{models.KeyTwoFactorEnabled, "true", false},
		{models.KeyTwoFactorEnabled, "yes", true},
		{"wealthease_bills", `[]`, false},
		{models.KeyTransactions, `[{`, true},
		{"mybillingPrefs", `{}`, true},
	}

	for _, tt := range tests {
		err := svc.PutKey(context.Background(), ns, tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("PutKey(%s, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}

	err := svc.PutKey(context.Background(), ns, "theme", "dark")
	if !errors.Is(err, ErrInvalidSettingKey) {
		t.Errorf("unknown key error = %v, want ErrInvalidSettingKey", err)
	}
}

func TestSetAvatarAndPreference(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository(), zap.NewNop())
	ns := uuid.New()
	ctx := context.Background()

	var verr *ValidationError
	if err := svc.SetAvatar(ctx, ns, ""); !errors.As(err, &verr) {
		t.Errorf("SetAvatar(\"\") error = %v, want ValidationError", err)
	}
	if err := svc.SetAvatar(ctx, ns, "🦊"); err != nil {
		t.Fatalf("SetAvatar() error = %v", err)
	}
	if err := svc.SetPreference(ctx, ns, models.KeyEmailNotifications, false); err != nil {
		t.Fatalf("SetPreference() error = %v", err)
	}
	if err := svc.SetPreference(ctx, ns, models.KeyIsLoggedIn, true); !errors.Is(err, ErrInvalidSettingKey) {
		t.Errorf("SetPreference(isLoggedIn) error = %v, want ErrInvalidSettingKey", err)
	}

	view, _ := svc.GetView(ctx, ns)
	if view.UserAvatar != "🦊" || view.EmailNotifications {
		t.Errorf("view = %+v", view)
	}
}

func TestLogoutKeepsEverythingElse(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository(), zap.NewNop())
	ns := uuid.New()
	seedSettings(t, svc, ns, map[models.SettingKey]string{
		models.KeyIsLoggedIn:   "true",
		models.KeyUserAvatar:   "🐱",
		models.KeyTransactions: `[]`,
	})

	removed, err := svc.Logout(context.Background(), ns)
	if err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if len(removed) != 1 || removed[0] != models.KeyIsLoggedIn {
		t.Errorf("removed = %v, want [isLoggedIn]", removed)
	}

	view, _ := svc.GetView(context.Background(), ns)
	if view.IsLoggedIn || len(view.Keys) != 2 {
		t.Errorf("view = %+v, want avatar and transactions kept", view)
	}
}

func TestClearDataRemovesOnlyDomainKeys(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository(), zap.NewNop())
	ns := uuid.New()
	seedSettings(t, svc, ns, map[models.SettingKey]string{
		models.KeyUserData:           `{"name":"Ayu"}`,
		models.KeyUserAvatar:         "🐱",
		models.KeyIsLoggedIn:         "true",
		models.KeyTwoFactorEnabled:   "true",
		models.KeyEmailNotifications: "false",
		models.KeyTransactions:       `[1]`,
		models.KeyBills:              `[2]`,
		"wealthease_budgets":         `[3]`,
		models.KeyCategories:         `["Food"]`,
	})

	removed, err := svc.ClearData(context.Background(), ns)
	if err != nil {
		t.Fatalf("ClearData() error = %v", err)
	}

	got := make([]string, len(removed))
	for i, k := range removed {
		got[i] = string(k)
	}
	sort.Strings(got)
	want := []string{"bills", "categories", "transactions", "wealthease_budgets"}
	if len(got) != len(want) {
		t.Fatalf("removed = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("removed[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	view, _ := svc.GetView(context.Background(), ns)
	if !view.IsLoggedIn || !view.TwoFactorEnabled || view.EmailNotifications || view.UserAvatar != "🐱" {
		t.Errorf("view = %+v, want profile, session and preferences kept", view)
	}
	if string(view.UserData) != `{"name":"Ayu"}` {
		t.Errorf("UserData = %s", view.UserData)
	}
}
