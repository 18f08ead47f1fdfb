package files

import (
	"context"
	"path"
	"slices"
	"strings"
)

const (
	TypeFolder = "folder"
	TypeFile   = "file"
)

// Node is one entry of the resource tree.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Type     string  `json:"type"`
	Size     int64   `json:"size,omitempty"`
	URL      string  `json:"url,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Tree lists every resource as a folder hierarchy rooted at ResourceRoot.
// Folders sort before files, each group by name.
func (s *Service) Tree(ctx context.Context) (*Node, error) {
	objects, err := s.store.List(ctx, ResourceRoot+"/")
	if err != nil {
		return nil, err
	}

	root := &Node{Name: ResourceRoot, Type: TypeFolder}
	folders := map[string]*Node{"": root}

	var folder func(rel string) *Node
	folder = func(rel string) *Node {
		if n, ok := folders[rel]; ok {
			return n
		}
		parent := folder(parentOf(rel))
		n := &Node{Name: path.Base(rel), Path: rel, Type: TypeFolder}
		parent.Children = append(parent.Children, n)
		folders[rel] = n
		return n
	}

	for _, obj := range objects {
		rel := strings.TrimPrefix(obj.Name, ResourceRoot+"/")
		if rel == "" {
			continue
		}
		dir, base := parentOf(rel), path.Base(rel)
		if base == keepFile {
			if dir != "" {
				folder(dir)
			}
			continue
		}
		parent := folder(dir)
		parent.Children = append(parent.Children, &Node{
			Name: base, Path: rel, Type: TypeFile, Size: obj.Size, URL: URL(obj.Name),
		})
	}

	sortTree(root)
	return root, nil
}

func parentOf(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return ""
}

func sortTree(n *Node) {
	slices.SortFunc(n.Children, func(a, b *Node) int {
		if a.Type != b.Type {
			if a.Type == TypeFolder {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	for _, c := range n.Children {
		if c.Type == TypeFolder {
			sortTree(c)
		}
	}
}
