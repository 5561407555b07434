// Given a pool of n candidate signers of which up to n-t may be offline or
// malicious, Coordinator repeatedly assembles sessions from responsive
// signers, drops any identifier whose share fails verification, and retries
// with a fresh subset until a valid signature is produced or the pool is
// exhausted. Grounded in the root-package prototype's MemberState/RunMember
// retry loop.
//
// roast performs no networking of its own: Signer is an in-process
// interface a caller implements however it transports SigningPackage and
// SignatureShare to a real remote participant.
package roast

import (
	"sync"

	"github.com/cryptops/frost/frost"
	"github.com/cryptops/frost/group"
)

// Signer is the coordinator's view of one candidate participant. A real
// deployment backs this with a network client; tests can back it directly
// with frost.Round1/Round2 over an in-memory frost.KeyPackage.
type Signer interface {
	Identifier() frost.Identifier
	// Commit returns this signer's Round 1 commitment, or an error if the
	// signer is unreachable or declines to participate.
	Commit() (frost.SigningCommitments, error)
	// Sign returns this signer's Round 2 signature share for pkg, or an
	// error if the signer is unreachable, declines, or pkg is stale
	// (e.g. the signer already consumed its nonces for a prior attempt).
	Sign(pkg frost.SigningPackage) (frost.SignatureShare, error)
}

// Coordinator runs the ROAST retry loop over a fixed pool of candidate
// signers, grounded in the root-package prototype's RunRoast /
// MemberState.RespondC/RespondS cycle generalized from concrete *big.Int
// FROST to the group.Ciphersuite-generic frost package.
type Coordinator struct {
	Suite      group.Ciphersuite
	PublicKeys frost.PublicKeyPackage
	MinSigners uint16
	MaxSigners uint16
	Signers    []Signer
}

// session tracks which identifiers have been excluded from consideration —
// because a commit or share request failed, or because a prior attempt's
// signature share was rejected — across retry attempts, grounded in
// gjkr/evidence_log.go's mutex-protected messageStorage keyed cache,
// adapted from DKG accusation evidence into a per-round exclusion set.
type session struct {
	mu       sync.Mutex
	excluded map[string]bool
}

func newSession() *session { return &session{excluded: make(map[string]bool)} }

func (s *session) exclude(id frost.Identifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excluded[id.String()] = true
}

func (s *session) isExcluded(id frost.Identifier) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.excluded[id.String()]
}

// Sign drives the retry loop for message until a valid aggregate signature
// is produced or too few responsive, non-excluded signers remain to meet
// MinSigners. Each attempt gathers fresh commitments from a responsive
// subset, requests signature shares, and on any per-share verification
// failure (frost.KindInvalidSignatureShare) permanently excludes the
// culprit and retries with the next responsive subset (spec.md §4.I culprit
// attribution feeds directly into this loop, SPEC_FULL.md §2.L).
func (c Coordinator) Sign(message []byte) (frost.Signature, error) {
	sess := newSession()
	coord := frost.Coordinator{Suite: c.Suite, PublicKeys: c.PublicKeys, MinSigners: c.MinSigners, MaxSigners: c.MaxSigners}

	for {
		active := c.responsiveSigners(sess)
		if len(active) < int(c.MinSigners) {
			return frost.Signature{}, &frost.Error{Kind: frost.KindIncorrectNumberOfCommitments,
				Detail: "roast: responsive signer pool exhausted below threshold"}
		}

		commitments, committed, err := c.collectCommitments(active, sess)
		if err != nil {
			return frost.Signature{}, err
		}
		if len(commitments) < int(c.MinSigners) {
			continue
		}

		pkg := frost.SigningPackage{Message: message, Commitments: commitments, MinSigners: c.MinSigners}

		shares, err := c.collectShares(committed, pkg, sess)
		if err != nil {
			return frost.Signature{}, err
		}
		if len(shares) != len(commitments) {
			continue
		}

		sig, err := coord.Aggregate(pkg, shares)
		if err == nil {
			return sig, nil
		}

		ferr, ok := err.(*frost.Error)
		if !ok || ferr.Kind != frost.KindInvalidSignatureShare {
			return frost.Signature{}, err
		}
		sess.exclude(ferr.Culprit)
	}
}

func (c Coordinator) responsiveSigners(sess *session) []Signer {
	var active []Signer
	for _, s := range c.Signers {
		if !sess.isExcluded(s.Identifier()) {
			active = append(active, s)
		}
	}
	return active
}

// collectCommitments requests Round 1 commitments from every signer in
// active concurrently, excluding (not failing the whole attempt for) any
// signer that errors or returns a commitment for the wrong identifier.
func (c Coordinator) collectCommitments(active []Signer, sess *session) ([]frost.SigningCommitments, []Signer, error) {
	type result struct {
		signer Signer
		commit frost.SigningCommitments
		err    error
	}

	results := make(chan result, len(active))
	var wg sync.WaitGroup
	for _, s := range active {
		wg.Add(1)
		go func(s Signer) {
			defer wg.Done()
			commit, err := s.Commit()
			results <- result{signer: s, commit: commit, err: err}
		}(s)
	}
	wg.Wait()
	close(results)

	var commitments []frost.SigningCommitments
	var committed []Signer
	for r := range results {
		if r.err != nil {
			sess.exclude(r.signer.Identifier())
			continue
		}
		if !r.commit.Identifier.Equal(r.signer.Identifier()) {
			sess.exclude(r.signer.Identifier())
			continue
		}
		commitments = append(commitments, r.commit)
		committed = append(committed, r.signer)
	}
	return commitments, committed, nil
}

// collectShares requests Round 2 signature shares from every signer in
// committed concurrently, excluding any signer that errors.
func (c Coordinator) collectShares(committed []Signer, pkg frost.SigningPackage, sess *session) ([]frost.SignatureShare, error) {
	type result struct {
		signer Signer
		share  frost.SignatureShare
		err    error
	}

	results := make(chan result, len(committed))
	var wg sync.WaitGroup
	for _, s := range committed {
		wg.Add(1)
		go func(s Signer) {
			defer wg.Done()
			share, err := s.Sign(pkg)
			results <- result{signer: s, share: share, err: err}
		}(s)
	}
	wg.Wait()
	close(results)

	var shares []frost.SignatureShare
	for r := range results {
		if r.err != nil {
			sess.exclude(r.signer.Identifier())
			continue
		}
		shares = append(shares, r.share)
	}
	return shares, nil
}
