package pdfjob

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/render"
	"github.com/goliatone/go-lettergen/pkg/request"
)

func TestBuild(t *testing.T) {
	doc := letter.Letter{
		Subject:          "Subject",
		Content:          "Body",
		RecipientAddress: "Acme GmbH\nMain St 1",
		SenderOneLine:    "Jane Doe • Main St 1",
		InformationBlock: "My reference: R",
		ReferenceBarcode: "nwn",
		Signature:        request.Signature{Kind: "text", Value: "Jane Doe"},
		Language:         "en",
	}

	got := Build(doc)
	want := Message{
		Subject:          "Subject",
		Content:          "Body",
		RecipientAddress: "Acme GmbH\nMain St 1",
		SenderOneLine:    "Jane Doe • Main St 1",
		InformationBlock: "My reference: R",
		Barcode:          "nwn",
		Signature:        request.Signature{Kind: "text", Value: "Jane Doe"},
		Language:         "en",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestChannelWorkerRoundTrip(t *testing.T) {
	requests := make(chan Request, 1)
	responses := make(chan Response)
	worker := NewChannelWorker(requests, responses)

	replies := make(chan render.Reply, 1)
	job := render.Job{Generation: 3, Filename: "acme_access_R.pdf", Letter: letter.Letter{Subject: "s"}}
	if err := worker.Submit(context.Background(), job, func(r render.Reply) { replies <- r }); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	req := <-requests
	if req.Generation != 3 || req.Filename != "acme_access_R.pdf" || req.Message.Subject != "s" {
		t.Fatalf("unexpected request: %+v", req)
	}

	responses <- Response{Generation: 3, Data: []byte("%PDF")}

	select {
	case reply := <-replies:
		if reply.Err != nil || string(reply.Artifact.Data) != "%PDF" {
			t.Fatalf("reply = %+v", reply)
		}
		if reply.Artifact.ContentType != "application/pdf" {
			t.Fatalf("content type = %q", reply.Artifact.ContentType)
		}
	case <-time.After(time.Second):
		t.Fatal("no reply within deadline")
	}
	close(responses)
}

func TestChannelWorkerErrorReply(t *testing.T) {
	requests := make(chan Request, 1)
	responses := make(chan Response)
	worker := NewChannelWorker(requests, responses)

	replies := make(chan render.Reply, 1)
	_ = worker.Submit(context.Background(), render.Job{Generation: 1}, func(r render.Reply) { replies <- r })
	<-requests

	responses <- Response{Generation: 1, Err: "out of ink"}

	select {
	case reply := <-replies:
		if reply.Err == nil {
			t.Fatalf("expected error reply, got %+v", reply)
		}
	case <-time.After(time.Second):
		t.Fatal("no reply within deadline")
	}
	close(responses)
}

func TestChannelWorkerDropsUnknownGeneration(t *testing.T) {
	requests := make(chan Request, 1)
	responses := make(chan Response)
	worker := NewChannelWorker(requests, responses)

	replies := make(chan render.Reply, 1)
	_ = worker.Submit(context.Background(), render.Job{Generation: 1}, func(r render.Reply) { replies <- r })
	<-requests

	// A reply for a generation nobody registered must not be delivered.
	responses <- Response{Generation: 99, Data: []byte("late")}
	responses <- Response{Generation: 1, Data: []byte("current")}

	select {
	case reply := <-replies:
		if string(reply.Artifact.Data) != "current" {
			t.Fatalf("delivered wrong reply: %+v", reply)
		}
	case <-time.After(time.Second):
		t.Fatal("no reply within deadline")
	}
	close(responses)
}
