package blocks_test

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/domain/entities"
	"badajozrespira/src/services/blocks"
)

func ids(bs []entities.ContentBlock) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("b%d", n)
	}
}

var _ = Describe("Editor", func() {
	var editor *blocks.Editor

	BeforeEach(func() {
		editor = blocks.NewEditor(nil).WithIDGenerator(sequentialIDs())
	})

	Context("AddBlock", func() {
		It("appends text blocks aligned left", func() {
			editor.AddBlock(entities.BlockHeader)
			block := editor.AddBlock(entities.BlockParagraph)

			Expect(editor.Len()).To(Equal(2))
			Expect(block.ID).To(Equal("b2"))
			Expect(block.Settings).To(Equal(entities.BlockSettings{TextAlign: entities.AlignLeft}))
			Expect(ids(editor.Blocks())).To(Equal([]string{"b1", "b2"}))
		})

		It("gives image blocks full width", func() {
			block := editor.AddBlock(entities.BlockImage)

			Expect(block.Settings.Width).To(Equal(entities.Width100))
			Expect(block.Settings.TextAlign).To(Equal(entities.AlignLeft))
		})
	})

	Context("UpdateBlock", func() {
		It("replaces the content of the matching block only", func() {
			editor.AddBlock(entities.BlockParagraph)
			editor.AddBlock(entities.BlockParagraph)

			Expect(editor.UpdateBlock("b2", "hola")).To(BeTrue())

			Expect(editor.Blocks()[0].Content).To(BeEmpty())
			Expect(editor.Blocks()[1].Content).To(Equal("hola"))
		})

		It("is a no-op for an unknown id", func() {
			editor.AddBlock(entities.BlockParagraph)
			before := editor.Blocks()

			Expect(editor.UpdateBlock("missing", "x")).To(BeFalse())
			Expect(editor.Blocks()).To(Equal(before))
		})
	})

	Context("UpdateBlockSettings", func() {
		It("merges only the given keys", func() {
			block := editor.AddBlock(entities.BlockImage)
			width := entities.Width50

			Expect(editor.UpdateBlockSettings(block.ID, blocks.SettingsPatch{Width: &width})).To(BeTrue())

			settings := editor.Blocks()[0].Settings
			Expect(settings.Width).To(Equal(entities.Width50))
			Expect(settings.TextAlign).To(Equal(entities.AlignLeft))
			Expect(settings.Filter).To(BeEmpty())
			Expect(settings.Caption).To(BeEmpty())
		})

		It("keeps earlier settings when a later patch names other keys", func() {
			block := editor.AddBlock(entities.BlockImage)
			filter := entities.FilterSepia
			caption := "Plaza Alta"

			editor.UpdateBlockSettings(block.ID, blocks.SettingsPatch{Filter: &filter})
			editor.UpdateBlockSettings(block.ID, blocks.SettingsPatch{Caption: &caption})

			Expect(editor.Blocks()[0].Settings).To(Equal(entities.BlockSettings{
				TextAlign: entities.AlignLeft,
				Width:     entities.Width100,
				Filter:    entities.FilterSepia,
				Caption:   "Plaza Alta",
			}))
		})
	})

	Context("MoveBlock", func() {
		BeforeEach(func() {
			editor.AddBlock(entities.BlockHeader)
			editor.AddBlock(entities.BlockParagraph)
			editor.AddBlock(entities.BlockQuote)
		})

		It("swaps with the previous block", func() {
			Expect(editor.MoveBlock(1, blocks.Up)).To(BeTrue())
			Expect(ids(editor.Blocks())).To(Equal([]string{"b2", "b1", "b3"}))
		})

		It("swaps with the next block", func() {
			Expect(editor.MoveBlock(1, blocks.Down)).To(BeTrue())
			Expect(ids(editor.Blocks())).To(Equal([]string{"b1", "b3", "b2"}))
		})

		DescribeTable("leaves the sequence unchanged at the boundaries",
			func(index int, direction blocks.Direction) {
				Expect(editor.MoveBlock(index, direction)).To(BeFalse())
				Expect(ids(editor.Blocks())).To(Equal([]string{"b1", "b2", "b3"}))
			},
			Entry("first block up", 0, blocks.Up),
			Entry("last block down", 2, blocks.Down),
			Entry("negative index", -1, blocks.Down),
			Entry("index past the end", 3, blocks.Up),
			Entry("unknown direction", 1, blocks.Direction("left")),
		)
	})

	Context("DeleteBlock", func() {
		It("removes one block and keeps the relative order of the rest", func() {
			for i := 0; i < 4; i++ {
				editor.AddBlock(entities.BlockParagraph)
			}

			Expect(editor.DeleteBlock(1)).To(BeTrue())

			Expect(editor.Len()).To(Equal(3))
			Expect(ids(editor.Blocks())).To(Equal([]string{"b1", "b3", "b4"}))
		})

		It("ignores an out of range index", func() {
			editor.AddBlock(entities.BlockParagraph)

			Expect(editor.DeleteBlock(5)).To(BeFalse())
			Expect(editor.Len()).To(Equal(1))
		})
	})

	Context("AttachImage", func() {
		It("only touches image blocks", func() {
			text := editor.AddBlock(entities.BlockParagraph)
			image := editor.AddBlock(entities.BlockImage)

			Expect(editor.AttachImage(text.ID, "/uploads/x.png")).To(BeFalse())
			Expect(editor.AttachImage(image.ID, "/uploads/x.png")).To(BeTrue())
			Expect(editor.Blocks()[1].Content).To(Equal("/uploads/x.png"))
		})
	})

	It("does not alias the slice it was built from", func() {
		original := []entities.ContentBlock{{ID: "a"}, {ID: "b"}}
		e := blocks.NewEditor(original)

		e.DeleteBlock(0)

		Expect(ids(original)).To(Equal([]string{"a", "b"}))
	})
})

var _ = Describe("DeriveExcerpt", func() {
	It("uses the first non-empty paragraph", func() {
		excerpt := blocks.DeriveExcerpt([]entities.ContentBlock{
			{Type: entities.BlockHeader, Content: "Título"},
			{Type: entities.BlockParagraph, Content: "   "},
			{Type: entities.BlockParagraph, Content: "Primer párrafo."},
			{Type: entities.BlockParagraph, Content: "Segundo."},
		})

		Expect(excerpt).To(Equal("Primer párrafo."))
	})

	It("truncates long paragraphs", func() {
		long := strings.Repeat("á", blocks.ExcerptLength+10)

		excerpt := blocks.DeriveExcerpt([]entities.ContentBlock{{Type: entities.BlockParagraph, Content: long}})

		Expect(excerpt).To(Equal(strings.Repeat("á", blocks.ExcerptLength) + "..."))
	})

	It("is empty without paragraphs", func() {
		Expect(blocks.DeriveExcerpt([]entities.ContentBlock{{Type: entities.BlockQuote, Content: "x"}})).To(BeEmpty())
	})
})
