// Package commitmsg judges whether a commit message describes concrete work.
//
// The check is a stemmed keyword match: a message is "good" when any of its
// words shares a stem with one of a small set of action verbs (fix, add,
// refactor, ...). Stemming uses the Porter2 english stemmer, so inflected
// forms such as "fixed", "fixing" and "tests" match their base verb.
//
// This is a descriptive heuristic, not a gate. False positives and negatives
// are expected.
//
//	commitmsg.IsGood("Fixed the null check")  // true
//	commitmsg.IsGood("Merge branch 'main'")   // false
package commitmsg
