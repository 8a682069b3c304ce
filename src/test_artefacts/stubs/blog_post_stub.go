package stubs

import (
	"time"

	"badajozrespira/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type BlogPostStub struct {
	post entities.BlogPost
}

func NewBlogPostStub() BlogPostStub {
	post := entities.BlogPost{
		ID:       gofakeit.UUID(),
		Title:    gofakeit.Sentence(5),
		Excerpt:  gofakeit.Sentence(12),
		Author:   gofakeit.Name(),
		Date:     gofakeit.Date().Format(time.DateOnly),
		ImageURL: gofakeit.URL(),
		Category: "General",
		Tags:     []string{gofakeit.Word()},
		Blocks: []entities.ContentBlock{
			{
				ID:       gofakeit.UUID(),
				Type:     entities.BlockHeader,
				Content:  gofakeit.Sentence(3),
				Settings: entities.BlockSettings{TextAlign: entities.AlignLeft},
			},
			{
				ID:       gofakeit.UUID(),
				Type:     entities.BlockParagraph,
				Content:  gofakeit.Paragraph(1, 3, 10, " "),
				Settings: entities.BlockSettings{TextAlign: entities.AlignLeft},
			},
		},
	}

	return BlogPostStub{post: post}
}

func (s BlogPostStub) WithID(id string) BlogPostStub {
	s.post.ID = id
	return s
}

func (s BlogPostStub) WithExcerpt(excerpt string) BlogPostStub {
	s.post.Excerpt = excerpt
	return s
}

func (s BlogPostStub) WithBlocks(blocks ...entities.ContentBlock) BlogPostStub {
	s.post.Blocks = blocks
	return s
}

func (s BlogPostStub) Get() entities.BlogPost {
	return s.post.Clone()
}
