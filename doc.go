/*
Package acexs decodes ACE (A Compact ENDF) nuclear-data evaluation files, the
text format read by MCNP-family Monte Carlo particle transport codes, into an
in-memory representation of reaction cross sections, angular distributions,
and fission-neutron yields per nuclide.

A companion xsdir directory file maps nuclide identifiers to (file, offset)
locations and atomic weight ratios; see the xsdir subpackage.

acexs supports the three ACE sub-formats needed to read continuous-energy
neutron transport, neutron dosimetry, and continuous-energy photoatomic
tables. It does not write ACE files, decode binary (type-2) ACE tables, or
decode the multigroup/discrete-neutron/thermal-scattering/photonuclear
sub-formats — those nuclide types are recognized but rejected with
*dispatch.NotImplementedError.

Browse the subpackages for the functionality you need:

  - identifier: ZAID/SZAX parsing and NTY classification
  - reaction: the MT reaction catalog
  - xsdir: XSDIR directory file parsing
  - ace/token: the whitespace-delimited XSS token stream
  - ace/header: ACE version/NXS/JXS header parsing
  - ace/seek: seeking a byte stream to a named nuclide
  - ace/crosssection: the (E, sigma) table and its log-linear lookup
  - ace/angular: tabulated angular-distribution decoding
  - ace/fission: fission-neutron-yield and delayed-precursor decoding
  - ace/transport, ace/dosimetry, ace/photoatomic: the three decoders
  - ace/dispatch: classifies an identifier and picks a decoder
  - pool: a process-wide deduplicated nuclide cache
*/
package acexs
