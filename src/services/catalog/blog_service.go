package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/blocks"
	"badajozrespira/src/services/events"
)

const (
	DefaultPostAuthor   = "Admin"
	DefaultPostImageURL = "https://picsum.photos/800/400"
	DefaultPostCategory = "General"
)

// BlockUpdate é a edição de um bloco: conteúdo, settings ou ambos.
type BlockUpdate struct {
	Content  *string              `json:"content,omitempty"`
	Settings blocks.SettingsPatch `json:"settings"`
}

type BlogService struct {
	base
	repository repositories.BlogPostRepository
}

func NewBlogService(logger *slog.Logger, repository repositories.BlogPostRepository, publisher events.Publisher) *BlogService {
	return &BlogService{base: newBase(logger, publisher), repository: repository}
}

func (s *BlogService) List(ctx context.Context) ([]entities.BlogPost, error) {
	posts, err := s.repository.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("BlogService.List - failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (entities.BlogPost, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.Get - failed to get post: %w", err)
	}
	return post, nil
}

// normalize aplica os padrões do painel. actingUser pode ser vazio.
func (s *BlogService) normalize(post entities.BlogPost, actingUser string) (entities.BlogPost, error) {
	if strings.TrimSpace(post.Title) == "" {
		return entities.BlogPost{}, domain.NewValidationError("title", "El título es obligatorio.")
	}
	for _, block := range post.Blocks {
		if !block.Type.IsValid() {
			return entities.BlogPost{}, domain.NewValidationError("blocks", fmt.Sprintf("Tipo de bloque desconocido: %q", block.Type))
		}
	}

	post.Author = orDefault(post.Author, orDefault(actingUser, DefaultPostAuthor))
	post.Date = orDefault(post.Date, s.today())
	post.Category = orDefault(post.Category, DefaultPostCategory)

	// A primeira imagem anexada vira a imagem principal.
	if strings.TrimSpace(post.ImageURL) == "" {
		for _, attachment := range post.Attachments {
			if attachment.Type == entities.AttachmentImage && attachment.URL != "" {
				post.ImageURL = attachment.URL
				break
			}
		}
	}
	post.ImageURL = orDefault(post.ImageURL, DefaultPostImageURL)

	if strings.TrimSpace(post.Excerpt) == "" {
		post.Excerpt = blocks.DeriveExcerpt(post.Blocks)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Blocks == nil {
		post.Blocks = []entities.ContentBlock{}
	}

	for i := range post.Blocks {
		if post.Blocks[i].ID == "" {
			post.Blocks[i].ID = s.newID()
		}
	}
	return post, nil
}

func (s *BlogService) Create(ctx context.Context, post entities.BlogPost, actingUser string) (entities.BlogPost, error) {
	post, err := s.normalize(post, actingUser)
	if err != nil {
		return entities.BlogPost{}, err
	}
	post.ID = s.newID()

	if err := s.repository.SavePost(ctx, post); err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.Create - failed to save post: %w", err)
	}

	s.publish(ctx, saveEventType(true), "post", post.ID, map[string]any{"title": post.Title})
	return post, nil
}

func (s *BlogService) Update(ctx context.Context, id string, post entities.BlogPost, actingUser string) (entities.BlogPost, error) {
	if _, err := s.repository.GetPost(ctx, id); err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.Update - failed to get post: %w", err)
	}

	post, err := s.normalize(post, actingUser)
	if err != nil {
		return entities.BlogPost{}, err
	}
	post.ID = id

	if err := s.repository.SavePost(ctx, post); err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.Update - failed to save post: %w", err)
	}

	s.publish(ctx, saveEventType(false), "post", id, map[string]any{"title": post.Title})
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.repository.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("BlogService.Delete - failed to delete post: %w", err)
	}
	s.publish(ctx, domain.EventEntityDeleted, "post", id, nil)
	return nil
}

// editBlocks aplica a edição pura dentro do EditPost do repositório, então
// duas edições no mesmo post nunca se sobrescrevem. O post só é gravado se a
// edição mudou alguma coisa.
func (s *BlogService) editBlocks(ctx context.Context, id string, edit func(e *blocks.Editor) bool) (entities.BlogPost, error) {
	return s.repository.EditPost(ctx, id, func(post *entities.BlogPost) bool {
		editor := blocks.NewEditor(post.Blocks).WithIDGenerator(s.newID)
		if !edit(editor) {
			return false
		}
		post.Blocks = editor.Blocks()
		return true
	})
}

// AddBlock acrescenta um bloco vazio do tipo pedido ao fim do corpo.
func (s *BlogService) AddBlock(ctx context.Context, id string, blockType entities.BlockType) (entities.BlogPost, entities.ContentBlock, error) {
	if !blockType.IsValid() {
		return entities.BlogPost{}, entities.ContentBlock{}, domain.NewValidationError("type", fmt.Sprintf("Tipo de bloque desconocido: %q", blockType))
	}

	var added entities.ContentBlock
	post, err := s.editBlocks(ctx, id, func(e *blocks.Editor) bool {
		added = e.AddBlock(blockType)
		return true
	})
	if err != nil {
		return entities.BlogPost{}, entities.ContentBlock{}, fmt.Errorf("BlogService.AddBlock - %w", err)
	}
	return post, added, nil
}

// UpdateBlock troca o conteúdo e/ou mescla as settings. Um bloco
// desconhecido deixa o post como está.
func (s *BlogService) UpdateBlock(ctx context.Context, id string, blockID string, update BlockUpdate) (entities.BlogPost, error) {
	post, err := s.editBlocks(ctx, id, func(e *blocks.Editor) bool {
		changed := false
		if update.Content != nil {
			changed = e.UpdateBlock(blockID, *update.Content) || changed
		}
		if !update.Settings.IsEmpty() {
			changed = e.UpdateBlockSettings(blockID, update.Settings) || changed
		}
		return changed
	})
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.UpdateBlock - %w", err)
	}
	return post, nil
}

func (s *BlogService) MoveBlock(ctx context.Context, id string, index int, direction blocks.Direction) (entities.BlogPost, error) {
	post, err := s.editBlocks(ctx, id, func(e *blocks.Editor) bool {
		return e.MoveBlock(index, direction)
	})
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.MoveBlock - %w", err)
	}
	return post, nil
}

func (s *BlogService) DeleteBlock(ctx context.Context, id string, index int) (entities.BlogPost, error) {
	post, err := s.editBlocks(ctx, id, func(e *blocks.Editor) bool {
		return e.DeleteBlock(index)
	})
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.DeleteBlock - %w", err)
	}
	return post, nil
}

// AttachImage aponta um bloco de imagem para uma URL já hospedada.
func (s *BlogService) AttachImage(ctx context.Context, id string, blockID string, url string) (entities.BlogPost, error) {
	post, err := s.editBlocks(ctx, id, func(e *blocks.Editor) bool {
		return e.AttachImage(blockID, url)
	})
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("BlogService.AttachImage - %w", err)
	}
	return post, nil
}
