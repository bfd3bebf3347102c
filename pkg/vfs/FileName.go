// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// FileName is a parsed file URI in the format scheme://[user[:password]@]host/path.
type FileName struct {
	Scheme   string
	UserName string
	Password string
	Host     string
	Path     string
}

func cleanPath(p string) string {
	if len(p) == 0 {
		return "/"
	}
	return path.Clean("/" + p)
}

// ParseURI parses the uri into a FileName.
// The user info in the authority may be percent-encoded.  The path is used as is,
// so "#", "?", and "%" are part of the path rather than a fragment, a query, or an escape.
func ParseURI(uri string) (*FileName, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || len(scheme) == 0 {
		return nil, fmt.Errorf("uri %q is missing a scheme: %w", uri, ErrInvalidPath)
	}
	authority, p, _ := strings.Cut(rest, "/")
	u, err := url.Parse(scheme + "://" + authority + "/")
	if err != nil {
		return nil, fmt.Errorf("error parsing uri %q: %w", uri, err)
	}
	if u.Path != "/" || len(u.RawQuery) > 0 || len(u.Fragment) > 0 {
		return nil, fmt.Errorf("uri %q has an invalid host: %w", uri, ErrInvalidPath)
	}
	name := &FileName{
		Scheme: strings.ToLower(u.Scheme),
		Host:   u.Host,
		Path:   cleanPath(p),
	}
	if u.User != nil {
		name.UserName = u.User.Username()
		name.Password, _ = u.User.Password()
	}
	return name, nil
}

func (n *FileName) withPath(p string) *FileName {
	return &FileName{
		Scheme:   n.Scheme,
		UserName: n.UserName,
		Password: n.Password,
		Host:     n.Host,
		Path:     cleanPath(p),
	}
}

// RootURI returns the uri of the root of the file system, without the password.
func (n *FileName) RootURI() string {
	if len(n.UserName) > 0 {
		return fmt.Sprintf("%s://%s@%s/", n.Scheme, url.User(n.UserName).String(), n.Host)
	}
	return fmt.Sprintf("%s://%s/", n.Scheme, n.Host)
}

// URI returns the full uri, without the password.
func (n *FileName) URI() string {
	return strings.TrimSuffix(n.RootURI(), "/") + n.Path
}

func (n *FileName) String() string {
	return n.URI()
}

func (n *FileName) IsRoot() bool {
	return n.Path == "/"
}

// BaseName returns the last element of the path, or an empty string for the root.
func (n *FileName) BaseName() string {
	if n.IsRoot() {
		return ""
	}
	return path.Base(n.Path)
}

// Child returns the name of the child with the given base name.
func (n *FileName) Child(name string) *FileName {
	return n.withPath(path.Join(n.Path, name))
}

// Join resolves ref against this name.  Absolute references start at the root,
// and ".." elements never climb above the root.
func (n *FileName) Join(ref string) *FileName {
	if strings.HasPrefix(ref, "/") {
		return n.withPath(ref)
	}
	return n.withPath(path.Join(n.Path, ref))
}

// Descendant resolves ref against this name and requires the result to be this name or below it.
func (n *FileName) Descendant(ref string) (*FileName, error) {
	if strings.HasPrefix(ref, "/") {
		return nil, fmt.Errorf("reference %q is absolute: %w", ref, ErrInvalidPath)
	}
	child := n.withPath(path.Join(n.Path, ref))
	if !n.IsAncestorOrSelf(child) {
		return nil, fmt.Errorf("reference %q escapes %q: %w", ref, n.Path, ErrInvalidPath)
	}
	return child, nil
}

// SameRoot returns true if both names belong to the same file system root.
func (n *FileName) SameRoot(other *FileName) bool {
	return n.Scheme == other.Scheme && n.UserName == other.UserName && strings.EqualFold(n.Host, other.Host)
}

// IsAncestorOrSelf returns true if other is this name or a descendant of it.
func (n *FileName) IsAncestorOrSelf(other *FileName) bool {
	if !n.SameRoot(other) {
		return false
	}
	if n.IsRoot() || n.Path == other.Path {
		return true
	}
	return strings.HasPrefix(other.Path, n.Path+"/")
}

// RelativeName returns the path of descendant relative to this name.
// The relative name of the name itself is ".".
func (n *FileName) RelativeName(descendant *FileName) (string, error) {
	if !n.IsAncestorOrSelf(descendant) {
		return "", fmt.Errorf("%q is not a descendant of %q: %w", descendant.URI(), n.URI(), ErrInvalidPath)
	}
	rel := strings.Trim(strings.TrimPrefix(descendant.Path, n.Path), "/")
	if len(rel) == 0 {
		return ".", nil
	}
	return rel, nil
}
