/*
Package domain contains the core domain models of the serology engine.

It defines the decision graph (question nodes whose two branches either
continue to another question or conclude with a diagnosis) and the
traversal Session that walks it. The package is pure: no I/O, no
persistence and no logging, following Hexagonal Architecture principles.

# Key Entities

  - Selection: the binary answer to a question (Positive or Negative).
  - Outcome: what a branch leads to, either Continue(next) or Conclude(text).
  - QuestionNode: one diagnostic step with its two outcomes.
  - Graph: the immutable, validated set of nodes plus the root id.
  - Session: the runtime snapshot of one walk (history, current node, pending answer, conclusion).
  - View: the projection of a Session a presentation layer renders.
*/
package domain
