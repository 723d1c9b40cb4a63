package delivery

import (
	"bytes"
	"encoding/json"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/question"
)

func sampleReport() *interview.Report {
	return &interview.Report{
		SessionID: "sess-1",
		Candidate: interview.Candidate{Name: "Ada Lovelace", Email: "ada@example.com"},
		Role:      "Python Developer",
		TotalScore: 30, MaxPossible: 50, Percentage: 60,
		Verdict:           interview.VerdictPass,
		HighestComplexity: 2,
		QuestionsAnswered: 2,
		StartedAt:         time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		GeneratedAt:       time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		History: []*interview.AnswerRecord{
			{
				Question:         question.Question{ID: "q1", Text: "what is a list comprehension?"},
				AnswerText:       "a compact way to build lists",
				ComplexityAtTime: 1,
				AwardedPoints:    5,
				Feedback:         "correct",
			},
			{
				Question:         question.Question{ID: "q2", Text: "explain the GIL & its impact"},
				AnswerText:       "a lock around the interpreter",
				ComplexityAtTime: 2,
				AwardedPoints:    5,
				Feedback:         "partially correct",
				FollowUp: &interview.FollowUpRecord{
					Text:             "how do you work around it?",
					AnswerText:       "multiprocessing",
					AdditionalPoints: 4,
					Feedback:         "good",
				},
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc["verdict"] != "PASS" {
		t.Errorf("verdict = %v, want PASS", doc["verdict"])
	}
	questions, ok := doc["questions"].([]any)
	if !ok || len(questions) != 2 {
		t.Fatalf("questions = %v", doc["questions"])
	}
	second := questions[1].(map[string]any)
	if _, ok := second["follow_up"]; !ok {
		t.Error("follow-up missing from export")
	}
	first := questions[0].(map[string]any)
	if _, ok := first["follow_up"]; ok {
		t.Error("empty follow-up serialized for first question")
	}
}

func TestMailerSendReport(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := &Mailer{
		cfg: SMTPConfig{
			Host: "smtp.example.com", Port: 587,
			Username: "hr@example.com", Password: "secret",
			RecruiterEmail: "recruiter@example.com",
		},
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	if err := m.SendReport(sampleReport()); err != nil {
		t.Fatalf("SendReport: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "hr@example.com" || len(gotTo) != 1 || gotTo[0] != "recruiter@example.com" {
		t.Errorf("from = %q, to = %v", gotFrom, gotTo)
	}

	body := string(gotMsg)
	if !strings.Contains(body, "Subject: Interview Results: Ada Lovelace - Python Developer") {
		t.Error("subject line missing or wrong")
	}
	if !strings.Contains(body, "PASS") {
		t.Error("verdict missing from body")
	}
	// The ampersand in the question text must be escaped in HTML.
	if !strings.Contains(body, "GIL &amp; its impact") {
		t.Error("question text not HTML-escaped")
	}
}

func TestMailerIncompleteConfig(t *testing.T) {
	m := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})
	if err := m.SendReport(sampleReport()); err == nil {
		t.Fatal("SendReport succeeded with no credentials")
	}
}

func TestDefaultExportName(t *testing.T) {
	got := DefaultExportName(sampleReport())
	want := "interview_ada_lovelace_20260301-0930.json"
	if got != want {
		t.Errorf("DefaultExportName = %q, want %q", got, want)
	}
}
