// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

type FileType int

const (
	// Imaginary is a path that does not exist.
	Imaginary FileType = iota
	File
	Folder
)

func (t FileType) HasContent() bool {
	return t == File
}

func (t FileType) HasChildren() bool {
	return t == Folder
}

func (t FileType) String() string {
	switch t {
	case File:
		return "file"
	case Folder:
		return "folder"
	}
	return "imaginary"
}
