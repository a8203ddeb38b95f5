package candidhttp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

const queueFixture = `[
	{
		"type": "report",
		"data": {
			"id": "rep-1",
			"reportType": "position",
			"targetContent": {
				"id": "pos-9",
				"statement": "Cities should ban cars downtown.",
				"category": "Transport",
				"creator": {"id": "u-1", "username": "alex", "displayName": "Alex"}
			},
			"submitter": {"id": "u-2", "username": "sam"},
			"submitterComment": "off topic",
			"rule": {"id": "rule-3", "title": "Stay civil", "text": "No insults."},
			"createdTime": "2026-02-01T10:00:00Z"
		}
	},
	{
		"type": "poll",
		"data": {"id": "future-item"}
	},
	{
		"type": "appeal",
		"data": {
			"id": "app-1",
			"appealState": "escalated",
			"originalReport": {"id": "rep-0", "reportType": "chat_log",
				"targetContent": {"id": "chat-1", "messages": [{"sender": {"id": "u-5"}, "content": "hi"}]}},
			"originalAction": {
				"id": "act-1",
				"responder": {"id": "mod-y"},
				"modResponse": "take_action",
				"actions": [{"userClass": "reported", "action": "temporary_ban", "duration": 3}]
			},
			"user": {"id": "u-5"},
			"userClass": "reported",
			"appealText": "I was joking",
			"priorResponses": [
				{"responder": {"id": "mod-x"}, "response": "approve", "responseText": "fair"}
			]
		}
	},
	{
		"type": "admin_response_notification",
		"data": {
			"modActionAppealId": "maa-1",
			"appealState": "modified",
			"originalReport": {"id": "rep-7", "reportType": "position"},
			"originalAction": {"id": "act-7", "responder": {"id": "mod-y"}, "modResponse": "take_action"},
			"appealText": "please",
			"appealUser": {"id": "u-8"},
			"adminResponder": {"id": "admin-1"},
			"adminResponseText": "reduced to warning"
		}
	}
]`

func TestModerationRepoGetQueueDecodesVariants(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/moderation/queue" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(queueFixture))
	}))
	defer server.Close()

	repo := newTestRepo(t, server.URL+"/api/v1")

	items, err := repo.GetQueue(context.Background())
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected unknown item to be skipped, got %d items", len(items))
	}

	report, ok := items[0].(model.Report)
	if !ok {
		t.Fatalf("expected report first, got %T", items[0])
	}
	if report.ID != "rep-1" || report.ReportType != enums.ReportTypePosition {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.TargetContent.Author == nil || report.TargetContent.Author.Username != "alex" {
		t.Fatalf("unexpected report author: %+v", report.TargetContent.Author)
	}
	if report.Rule.Description != "No insults." {
		t.Fatalf("unexpected rule: %+v", report.Rule)
	}
	if !report.CreatedAt.Equal(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created time: %s", report.CreatedAt)
	}

	appeal, ok := items[1].(model.Appeal)
	if !ok {
		t.Fatalf("expected appeal second, got %T", items[1])
	}
	if appeal.State != enums.AppealStateEscalated || appeal.OriginalReport.ReportType != enums.ReportTypeChatLog {
		t.Fatalf("unexpected appeal: %+v", appeal)
	}
	if len(appeal.OriginalAction.Actions) != 1 || *appeal.OriginalAction.Actions[0].DurationDays != 3 {
		t.Fatalf("unexpected original actions: %+v", appeal.OriginalAction.Actions)
	}
	if overruler, ok := appeal.OverrulingResponse(); !ok || overruler.Responder.ID != "mod-x" {
		t.Fatalf("unexpected overruling response: %+v", overruler)
	}

	notification, ok := items[2].(model.AdminResponseNotification)
	if !ok {
		t.Fatalf("expected notification third, got %T", items[2])
	}
	if notification.ModActionAppealID != "maa-1" || notification.State != enums.AppealStateModified {
		t.Fatalf("unexpected notification: %+v", notification)
	}
}

func TestModerationRepoGetQueueFailsOnMalformedItem(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		body string
	}{
		{name: "report without id", body: `[{"type":"report","data":{"reportType":"position"}}]`},
		{name: "appeal with bad state", body: `[{"type":"appeal","data":{"id":"a","appealState":"approved"}}]`},
		{name: "notification with bad state", body: `[{"type":"admin_response_notification","data":{"modActionAppealId":"n","appealState":"pending"}}]`},
		{name: "data not an object", body: `[{"type":"report","data":"oops"}]`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			repo := newTestRepo(t, server.URL)
			if _, err := repo.GetQueue(context.Background()); err == nil {
				t.Fatal("expected decode error")
			}
		})
	}
}

func TestModerationRepoTakeActionSendsBody(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	repo := newTestRepo(t, server.URL)
	days := 7
	err := repo.TakeAction(context.Background(), "rep-1", model.TakeActionRequest{
		ModResponse: enums.ModResponseTakeAction,
		Actions: []model.ModAction{
			{UserClass: enums.UserClassCreator, Action: enums.ModActionTemporaryBan, DurationDays: &days},
		},
	})
	if err != nil {
		t.Fatalf("take action: %v", err)
	}

	if gotPath != "/moderation/reports/rep-1/response" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotBody["modResponse"] != "take_action" {
		t.Fatalf("unexpected modResponse: %v", gotBody["modResponse"])
	}
	if _, ok := gotBody["modResponseText"]; ok {
		t.Fatalf("empty modResponseText must be omitted: %v", gotBody)
	}
	actions, ok := gotBody["actions"].([]interface{})
	if !ok || len(actions) != 1 {
		t.Fatalf("unexpected actions: %v", gotBody["actions"])
	}
	first := actions[0].(map[string]interface{})
	if first["userClass"] != "creator" || first["action"] != "temporary_ban" || first["duration"] != float64(7) {
		t.Fatalf("unexpected action payload: %v", first)
	}
}

func TestModerationRepoRoutesCalls(t *testing.T) {
	t.Parallel()

	var paths []string
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, string(raw))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	repo := newTestRepo(t, server.URL)
	ctx := context.Background()

	if err := repo.ClaimReport(ctx, "r 1"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := repo.ReleaseReport(ctx, "r2"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := repo.RespondToAppeal(ctx, "a1", model.AppealResponseRequest{
		Response:     enums.AppealResponseDeny,
		ResponseText: " original action stands ",
	}); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if err := repo.DismissAdminResponseNotification(ctx, "n1"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	want := []string{
		"/moderation/reports/r 1/claim",
		"/moderation/reports/r2/release",
		"/moderation/appeals/a1/response",
		"/moderation/notifications/n1/dismiss",
	}
	if len(paths) != len(want) {
		t.Fatalf("unexpected call count: %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("call %d: got %s want %s", i, paths[i], want[i])
		}
	}
	if bodies[2] != `{"response":"deny","responseText":"original action stands"}` {
		t.Fatalf("unexpected appeal body: %s", bodies[2])
	}
	if bodies[0] != "" || bodies[3] != "" {
		t.Fatalf("claim and dismiss must not send a body: %q %q", bodies[0], bodies[3])
	}
}

func TestModerationRepoRejectsEmptyIDs(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, "http://127.0.0.1:1")
	ctx := context.Background()

	if err := repo.ClaimReport(ctx, " "); err == nil {
		t.Fatal("expected error for empty report id")
	}
	if err := repo.RespondToAppeal(ctx, "", model.AppealResponseRequest{}); err == nil {
		t.Fatal("expected error for empty appeal id")
	}
	if err := repo.DismissAdminResponseNotification(ctx, ""); err == nil {
		t.Fatal("expected error for empty notification id")
	}
}

func newTestRepo(t *testing.T, baseURL string) *ModerationRepo {
	t.Helper()

	client, err := NewClient(baseURL, "token", 2*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewModerationRepo(client, nil)
}
