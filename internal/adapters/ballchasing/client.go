package ballchasing

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

func (c *Client) Group(ctx context.Context, id string) (Group, error) {
	var g Group
	err := c.getJSON(ctx, "/groups/"+url.PathEscape(id), nil, &g)
	return g, err
}

// GroupChildren: subgrupos de id en orden de creación, cada uno con su detalle.
func (c *Client) GroupChildren(ctx context.Context, id string) ([]Group, error) {
	q := url.Values{}
	q.Set("group", id)
	q.Set("sort-by", "created")
	q.Set("sort-dir", "asc")

	var list groupList
	if err := c.getJSON(ctx, "/groups", q, &list); err != nil {
		return nil, err
	}
	out := make([]Group, 0, len(list.List))
	for _, item := range list.List {
		g, err := c.Group(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", item.ID, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// ReplayGroups: el grupo raíz primero y después los hijos (ParentID = id).
func (c *Client) ReplayGroups(ctx context.Context, id string) ([]domain.ReplayGroup, error) {
	root, err := c.Group(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", id, err)
	}
	children, err := c.GroupChildren(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ReplayGroup, 0, len(children)+1)
	out = append(out, root.Domain(""))
	for _, ch := range children {
		out = append(out, ch.Domain(id))
	}
	return out, nil
}
