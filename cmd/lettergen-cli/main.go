package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	lettergen "github.com/goliatone/go-lettergen"
	"github.com/goliatone/go-lettergen/pkg/prompt"
	"github.com/goliatone/go-lettergen/pkg/request"
)

func main() {
	typ := flag.String("type", "access", "request type: access, erasure or rectification")
	recipientName := flag.String("recipient", "", "recipient organization name")
	recipientAddress := flag.String("address", "", "recipient postal address")
	fax := flag.String("fax", "", "recipient fax number")
	locale := flag.String("locale", "en", "request language")
	senderName := flag.String("name", "", "your full name (prompted when empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *recipientName == "" {
		log.Fatal("a recipient name is required (-recipient)")
	}

	ctx := context.Background()

	rec := lettergen.Recipient{
		Name:    *recipientName,
		Address: *recipientAddress,
		Fax:     *fax,
	}

	fields := []lettergen.IdentityField{
		{Kind: request.FieldKindName, Description: "Name", Value: request.TextValue(*senderName)},
		{Kind: request.FieldKindAddress, Description: "Address"},
	}

	filler := prompt.NewFiller()
	fields, err := filler.Fill(ctx, fields)
	if err != nil {
		log.Fatalf("Failed to collect identity data: %v", err)
	}

	text, err := lettergen.GenerateText(ctx, request.Type(*typ), rec, fields, *locale)
	if err != nil {
		log.Fatalf("Failed to generate letter: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, text, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Letter written to %s\n", *output)
	} else {
		fmt.Println(string(text))
	}
}
