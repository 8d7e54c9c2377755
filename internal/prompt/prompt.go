// Package prompt builds the blog-writing instruction sent to the model.
package prompt

import (
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// DateLayout is the frontmatter date format.
const DateLayout = "2006-01-02"

const template = `You are a technical blog writer. Convert this development session memory into an engaging, public-ready blog post.

INPUT (Session Memory):
%s

REQUIREMENTS:
1. Transform technical decisions into narrative insights
2. Keep the "Pain Log" as "Lessons Learned" or "Challenges"
3. Make it readable for a general developer audience
4. Add markdown frontmatter with: title, date, tags, excerpt
5. Use proper markdown formatting with headers, code blocks, lists
6. Maintain technical accuracy but improve readability

OUTPUT FORMAT:
---
title: "[Engaging Title]"
date: %s
tags: [relevant, tags, here]
excerpt: "Brief summary of the post"
---

[Blog post content in markdown]

Generate the blog post now:`

// Build returns the instruction embedding note verbatim and date as the
// literal frontmatter date.
func Build(note string, date time.Time) string {
	return fmt.Sprintf(template, note, date.Format(DateLayout))
}

// Message wraps text as the single user-role message of a request.
func Message(text string) anthropic.MessageParam {
	return anthropic.NewUserMessage(anthropic.NewTextBlock(text))
}
