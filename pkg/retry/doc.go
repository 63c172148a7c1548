/*
Package retry provides pacing policies for the flow runtime's producer side.

A producer facing a full bounded queue does not block indefinitely: it pushes
with a bounded timeout, re-checks its component's shutdown flag, and tries
again. The Policy interface decides how long each of those bounded attempts
waits.

# Policies

  - FixedDelay: the same bounded wait on every attempt. The runtime default.
  - ExponentialBackoff: geometrically growing wait, capped, with optional
    jitter to decorrelate multiple producers fanning into one queue.

Policies are stateless with respect to individual sends; the attempt counter
is owned by the send loop and resets per message.
*/
package retry
