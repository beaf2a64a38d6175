// Package bytecode defines the compiled form of a program: register-machine
// instructions packed into 32-bit words, the chunk that holds one compiled
// function, notification descriptors for instrumentation, a disassembler and
// a CBOR wire format.
//
// # Instruction Format
//
// Every instruction is one Instruction word with a 6-bit opcode and one of
// three operand layouts:
//
//   - ModeABC: A (8 bits) plus B and C (9 bits each). B and C of arithmetic,
//     comparison and element instructions are RK operands: ids below
//     MaxRegisterCount name registers, ids at or above it name constants.
//
//   - ModeABx: A plus an unsigned 18-bit Bx, used for constant, global,
//     prototype and notification indices.
//
//   - ModeAsBx: A plus a signed 18-bit sBx stored in excess-K form. Jumps
//     store an offset relative to the next instruction; the absolute target
//     of the jump at pc is pc + 1 + sBx (see Chunk.JumpTarget).
//
// # Tests and Jumps
//
// EQ, LT, LE, IN and TEST are always followed by a JMP. When the test's
// outcome matches the expectation encoded in A (or B for TEST) the JMP is
// executed, otherwise it is skipped. The compiler builds short-circuit
// boolean expressions and comparison chains out of these pairs.
//
// # Notifications
//
// VISNOTIFY A Bx has no effect on program state. It names entry Bx of the
// chunk's notification table, which records the event kind and the operand
// ids the VM reads to build the event payload. The compiler emits
// notifications only for event kinds that have listeners, so a chunk
// compiled without listeners contains none.
//
// # Serialization
//
// MarshalChunk encodes a chunk tree as canonical CBOR behind a four byte
// magic, so identical programs produce identical bytes and can be stored by
// content hash.
package bytecode
