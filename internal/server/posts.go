package server

import (
	"slices"
	"sync"
)

// Post is the placeholder API's resource.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// Posts is an in-memory post collection with sequential IDs.
type Posts struct {
	mu     sync.RWMutex
	posts  []Post
	nextID int
}

// NewPosts creates a collection holding seed. New IDs continue after the
// highest seeded ID.
func NewPosts(seed ...Post) *Posts {
	p := &Posts{posts: slices.Clone(seed), nextID: 1}
	for _, post := range seed {
		if post.ID >= p.nextID {
			p.nextID = post.ID + 1
		}
	}
	return p
}

// List returns a copy of all posts in insertion order.
func (p *Posts) List() []Post {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Post, len(p.posts))
	copy(out, p.posts)
	return out
}

// Get returns the post with id.
func (p *Posts) Get(id int) (Post, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, post := range p.posts {
		if post.ID == id {
			return post, true
		}
	}
	return Post{}, false
}

// Create assigns post an ID and stores it.
func (p *Posts) Create(post Post) Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	post.ID = p.nextID
	p.nextID++
	p.posts = append(p.posts, post)
	return post
}

// DefaultPosts is a small starter set in the placeholder API's style.
func DefaultPosts() []Post {
	return []Post{
		{ID: 1, UserID: 1, Title: "sunt aut facere repellat provident occaecati excepturi optio reprehenderit", Body: "quia et suscipit"},
		{ID: 2, UserID: 1, Title: "qui est esse", Body: "est rerum tempore vitae"},
		{ID: 3, UserID: 1, Title: "ea molestias quasi exercitationem repellat qui ipsa sit aut", Body: "et iusto sed quo iure"},
	}
}
