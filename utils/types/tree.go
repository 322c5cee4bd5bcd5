package types

import "time"

// ItemType tags a FileSystemItem as a file or a directory.
type ItemType string

const (
	FileItem      ItemType = "file"
	DirectoryItem ItemType = "directory"
)

// FileSystemItem is a node in the virtual filesystem. Content is only meaningful for files, Children only for directories.
type FileSystemItem struct {
	Type         ItemType
	Name         string
	Content      string
	Children     map[string]*FileSystemItem
	LastModified time.Time
}

// IsDir reports whether the item is a directory.
func (i *FileSystemItem) IsDir() bool {
	return i != nil && i.Type == DirectoryItem
}
