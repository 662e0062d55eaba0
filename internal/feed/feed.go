package feed

import (
	"fmt"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/beevik/etree"
)

// ItemLimit bounds how many posts the feed includes.
const ItemLimit = 50

// Build renders an RSS 2.0 document from the given posts. Unpublished
// posts are skipped.
func Build(posts []models.PostWithVotes) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText("Blog Service")
	channel.CreateElement("link").SetText("/posts")
	channel.CreateElement("description").SetText("Latest published posts")

	for _, p := range posts {
		if !p.Post.Published {
			continue
		}
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(p.Post.Title)
		item.CreateElement("link").SetText(fmt.Sprintf("/posts/%d", p.Post.ID))
		item.CreateElement("guid").SetText(fmt.Sprintf("%d", p.Post.ID))
		item.CreateElement("description").SetText(p.Post.Content)
		item.CreateElement("pubDate").SetText(p.Post.CreatedAt.Format("Mon, 02 Jan 2006 15:04:05 -0700"))
		item.CreateElement("category").SetText(fmt.Sprintf("%d votes", p.Votes))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %v", err)
	}
	return out, nil
}
