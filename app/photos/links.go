package photos

import "context"

var _ Resolver = (*LinkResolver)(nil)

// LinkResolver is the hosted-photo variant: the extractor already
// collected the photo URLs from the body, so acquisition is a
// pass-through and there is no local storage to clean up.
type LinkResolver struct{}

func NewLinkResolver() *LinkResolver {
	return &LinkResolver{}
}

func (r *LinkResolver) Acquire(_ context.Context, _, _ string, extracted []string) ([]string, error) {
	return extracted, nil
}

func (r *LinkResolver) Remove(_ string) error {
	return nil
}
