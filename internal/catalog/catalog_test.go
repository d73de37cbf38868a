package catalog

import (
	"strings"
	"testing"
)

func TestAnswer_LambdaQuestion(t *testing.T) {
	got := Answer("What is AWS Lambda?")
	if !strings.Contains(got, "serverless compute service") {
		t.Fatalf("expected the Lambda description, got %q", got)
	}
}

func TestAnswer_LambdaAtEdgeDoesNotMatchLambda(t *testing.T) {
	got := Answer("Tell me about the EC2 edge case for lambda@edge")
	if strings.Contains(got, "serverless compute service") {
		t.Fatalf("lambda@edge question matched the Lambda entry: %q", got)
	}
	// "ec2" is still present, so the EC2 entry should win.
	if !strings.Contains(got, "Elastic Compute Cloud") {
		t.Fatalf("expected the EC2 description, got %q", got)
	}
}

func TestAnswer_FirstMatchWins(t *testing.T) {
	// Mentions both S3 and Glacier; the S3 entry excludes "glacier",
	// so the Glacier entry answers.
	got := Answer("How does s3 glacier work?")
	if !strings.Contains(got, "data archiving") {
		t.Fatalf("expected the Glacier description, got %q", got)
	}
}

func TestAnswer_CaseInsensitive(t *testing.T) {
	got := Answer("EXPLAIN DYNAMODB")
	if !strings.Contains(got, "key-value and document database") {
		t.Fatalf("expected the DynamoDB description, got %q", got)
	}
}

func TestAnswer_NoMatchEchoesQuestion(t *testing.T) {
	q := "Do you like jazz?"
	got := Answer(q)
	if !strings.Contains(got, q) {
		t.Fatalf("expected the question echoed back, got %q", got)
	}
	if !strings.Contains(got, "Lambda") || !strings.Contains(got, "DynamoDB") {
		t.Fatalf("expected representative categories listed, got %q", got)
	}
}

func TestEntryOrderIsInspectable(t *testing.T) {
	// The exclusion list on the Lambda entry is load-bearing: without
	// it, any Lambda@Edge question would be answered as plain Lambda.
	if len(entries) == 0 || entries[0].Match[0] != "lambda" {
		t.Fatal("expected the lambda entry first in the table")
	}
	if len(entries[0].Exclude) == 0 || entries[0].Exclude[0] != "edge" {
		t.Fatal("expected the lambda entry to exclude edge")
	}
}
