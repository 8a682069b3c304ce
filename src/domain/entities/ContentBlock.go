package entities

type BlockType string

const (
	BlockHeader    BlockType = "header"
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
	BlockQuote     BlockType = "quote"
)

func (t BlockType) IsValid() bool {
	switch t {
	case BlockHeader, BlockParagraph, BlockImage, BlockQuote:
		return true
	}
	return false
}

type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

type ImageWidth string

const (
	Width25  ImageWidth = "25%"
	Width50  ImageWidth = "50%"
	Width75  ImageWidth = "75%"
	Width100 ImageWidth = "100%"
)

type ImageFilter string

const (
	FilterNone      ImageFilter = "none"
	FilterGrayscale ImageFilter = "grayscale"
	FilterSepia     ImageFilter = "sepia"
	FilterBlur      ImageFilter = "blur"
)

// BlockSettings guarda as opções de apresentação de um bloco.
// Width e Filter só fazem sentido em blocos de imagem.
type BlockSettings struct {
	TextAlign TextAlign   `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	Width     ImageWidth  `json:"width,omitempty" yaml:"width,omitempty"`
	Filter    ImageFilter `json:"filter,omitempty" yaml:"filter,omitempty"`
	Caption   string      `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// ContentBlock é um fragmento tipado do corpo de um post.
// Content é texto para header/paragraph/quote e uma URL para image.
type ContentBlock struct {
	ID       string        `json:"id" yaml:"id"`
	Type     BlockType     `json:"type" yaml:"type"`
	Content  string        `json:"content" yaml:"content"`
	Settings BlockSettings `json:"settings" yaml:"settings"`
}
