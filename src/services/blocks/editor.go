// Package blocks implementa o editor de blocos do corpo dos posts.
// Todas as operações são transformações puras da sequência: índices fora
// do intervalo e ids desconhecidos são ignorados, nunca retornam erro.
package blocks

import (
	"strings"
	"unicode/utf8"

	"badajozrespira/src/domain/entities"

	"github.com/google/uuid"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// SettingsPatch carries the settings keys to overwrite; nil keys are left untouched.
type SettingsPatch struct {
	TextAlign *entities.TextAlign   `json:"textAlign,omitempty"`
	Width     *entities.ImageWidth  `json:"width,omitempty"`
	Filter    *entities.ImageFilter `json:"filter,omitempty"`
	Caption   *string               `json:"caption,omitempty"`
}

func (p SettingsPatch) IsEmpty() bool {
	return p.TextAlign == nil && p.Width == nil && p.Filter == nil && p.Caption == nil
}

type Editor struct {
	blocks []entities.ContentBlock
	newID  func() string
}

func NewEditor(blocks []entities.ContentBlock) *Editor {
	return &Editor{
		blocks: append([]entities.ContentBlock(nil), blocks...),
		newID:  uuid.NewString,
	}
}

// WithIDGenerator replaces the block id source.
func (e *Editor) WithIDGenerator(newID func() string) *Editor {
	e.newID = newID
	return e
}

// Blocks returns a copy of the current sequence.
func (e *Editor) Blocks() []entities.ContentBlock {
	return append([]entities.ContentBlock{}, e.blocks...)
}

func (e *Editor) Len() int {
	return len(e.blocks)
}

// DefaultSettings são as opções de um bloco recém criado.
func DefaultSettings(t entities.BlockType) entities.BlockSettings {
	settings := entities.BlockSettings{TextAlign: entities.AlignLeft}
	if t == entities.BlockImage {
		settings.Width = entities.Width100
	}
	return settings
}

// AddBlock appends an empty block of the given type and returns it.
func (e *Editor) AddBlock(t entities.BlockType) entities.ContentBlock {
	block := entities.ContentBlock{
		ID:       e.newID(),
		Type:     t,
		Settings: DefaultSettings(t),
	}
	e.blocks = append(e.blocks, block)
	return block
}

func (e *Editor) indexOf(id string) int {
	for i := range e.blocks {
		if e.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateBlock troca o conteúdo (texto ou URL) do bloco com o id informado.
func (e *Editor) UpdateBlock(id string, content string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.blocks[i].Content = content
	return true
}

// UpdateBlockSettings aplica um merge raso: só as chaves presentes no patch mudam.
func (e *Editor) UpdateBlockSettings(id string, patch SettingsPatch) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}

	settings := &e.blocks[i].Settings
	if patch.TextAlign != nil {
		settings.TextAlign = *patch.TextAlign
	}
	if patch.Width != nil {
		settings.Width = *patch.Width
	}
	if patch.Filter != nil {
		settings.Filter = *patch.Filter
	}
	if patch.Caption != nil {
		settings.Caption = *patch.Caption
	}
	return true
}

// MoveBlock swaps the block at index with its neighbour. Moving the first
// block up or the last block down does nothing.
func (e *Editor) MoveBlock(index int, direction Direction) bool {
	target := index
	switch direction {
	case Up:
		target--
	case Down:
		target++
	default:
		return false
	}

	if index < 0 || index >= len(e.blocks) || target < 0 || target >= len(e.blocks) {
		return false
	}

	e.blocks[index], e.blocks[target] = e.blocks[target], e.blocks[index]
	return true
}

func (e *Editor) DeleteBlock(index int) bool {
	if index < 0 || index >= len(e.blocks) {
		return false
	}
	e.blocks = append(e.blocks[:index], e.blocks[index+1:]...)
	return true
}

// AttachImage substitui o conteúdo de um bloco de imagem por uma URL de
// referência da sessão. Blocos que não são imagem são ignorados.
func (e *Editor) AttachImage(id string, url string) bool {
	i := e.indexOf(id)
	if i < 0 || e.blocks[i].Type != entities.BlockImage {
		return false
	}
	e.blocks[i].Content = url
	return true
}

// ExcerptLength is the rune budget of a derived excerpt.
const ExcerptLength = 150

// DeriveExcerpt returns the text of the first non-empty paragraph block,
// truncated to ExcerptLength runes with a trailing ellipsis.
func DeriveExcerpt(blocks []entities.ContentBlock) string {
	for _, block := range blocks {
		if block.Type != entities.BlockParagraph {
			continue
		}

		text := strings.TrimSpace(block.Content)
		if text == "" {
			continue
		}

		return Truncate(text, ExcerptLength, "...")
	}
	return ""
}

// Truncate cuts s to at most max runes, appending suffix when it had to cut.
func Truncate(s string, max int, suffix string) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max]), " ") + suffix
}
