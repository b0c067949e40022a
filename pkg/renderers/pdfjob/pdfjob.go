// Package pdfjob speaks the background PDF renderer's message protocol. The
// renderer itself is an opaque collaborator reached over a pair of channels;
// this package only encodes letters into its request messages and routes
// replies back to the dispatcher.
package pdfjob

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/render"
	"github.com/goliatone/go-lettergen/pkg/request"
)

// Message is the renderer-ready document structure sent to the background
// worker. Barcode carries the pre-encoded wide/narrow payload; the worker
// draws the bars.
type Message struct {
	Subject          string            `json:"subject"`
	Content          string            `json:"content"`
	RecipientAddress string            `json:"recipient_address"`
	SenderOneLine    string            `json:"sender_oneline"`
	InformationBlock string            `json:"information_block"`
	Barcode          string            `json:"reference_barcode"`
	Signature        request.Signature `json:"signature"`
	Language         string            `json:"language"`
}

// Build encodes a letter into the worker's request message.
func Build(doc letter.Letter) Message {
	return Message{
		Subject:          doc.Subject,
		Content:          doc.Content,
		RecipientAddress: doc.RecipientAddress,
		SenderOneLine:    doc.SenderOneLine,
		InformationBlock: doc.InformationBlock,
		Barcode:          doc.ReferenceBarcode,
		Signature:        doc.Signature,
		Language:         doc.Language,
	}
}

// Request is one unit of work on the renderer channel.
type Request struct {
	Generation uint64
	Filename   string
	Message    Message
}

// Response is the renderer's reply. Data addresses the rendered artifact;
// a non-empty Err reports a renderer-side failure.
type Response struct {
	Generation  uint64
	Data        []byte
	ContentType string
	Err         string
}

// ChannelWorker adapts the channel pair to the render.Worker interface. One
// goroutine pumps responses back to the callbacks registered at submission
// time; replies for generations nobody waits on anymore are dropped.
type ChannelWorker struct {
	requests chan<- Request

	mu        sync.Mutex
	callbacks map[uint64]func(render.Reply)
	closed    bool
}

// NewChannelWorker wires a worker to its request/response channels and starts
// the response pump. The pump stops when responses is closed.
func NewChannelWorker(requests chan<- Request, responses <-chan Response) *ChannelWorker {
	w := &ChannelWorker{
		requests:  requests,
		callbacks: make(map[uint64]func(render.Reply)),
	}
	go w.pump(responses)
	return w
}

// Submit implements render.Worker. It never blocks on the render itself, only
// on handing the request over.
func (w *ChannelWorker) Submit(ctx context.Context, job render.Job, reply func(render.Reply)) error {
	if reply == nil {
		return errors.New("pdfjob: reply callback is required")
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.New("pdfjob: worker is closed")
	}
	w.callbacks[job.Generation] = reply
	w.mu.Unlock()

	req := Request{
		Generation: job.Generation,
		Filename:   job.Filename,
		Message:    Build(job.Letter),
	}

	select {
	case w.requests <- req:
		return nil
	case <-ctx.Done():
		w.mu.Lock()
		delete(w.callbacks, job.Generation)
		w.mu.Unlock()
		return ctx.Err()
	}
}

func (w *ChannelWorker) pump(responses <-chan Response) {
	for resp := range responses {
		w.mu.Lock()
		callback, ok := w.callbacks[resp.Generation]
		if ok {
			delete(w.callbacks, resp.Generation)
		}
		w.mu.Unlock()
		if !ok {
			continue
		}

		reply := render.Reply{Generation: resp.Generation}
		if resp.Err != "" {
			reply.Err = fmt.Errorf("pdfjob: %s", resp.Err)
		} else {
			contentType := resp.ContentType
			if contentType == "" {
				contentType = "application/pdf"
			}
			reply.Artifact = render.Artifact{ContentType: contentType, Data: resp.Data}
		}
		callback(reply)
	}

	w.mu.Lock()
	w.closed = true
	w.callbacks = nil
	w.mu.Unlock()
}
